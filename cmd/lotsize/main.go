package main

import (
	"fmt"
	"os"

	"github.com/rustyeddy/lotsize/cmd/lotsize/cmd"
	"github.com/rustyeddy/lotsize/internal/display"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.Error(err.Error()))
		os.Exit(1)
	}
}
