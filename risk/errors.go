package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/lotsize/market"
)

// ErrInvalidInput is returned for non-finite, negative or out of range
// trade parameters and for unparseable symbols.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func quotient(num, den float64, what string) (float64, error) {
	if den == 0 || !finite(den) {
		return 0, fmt.Errorf("%w: %s", market.ErrDivideByZero, what)
	}
	q := num / den
	if !finite(q) {
		return 0, fmt.Errorf("%w: %s is not finite", market.ErrDivideByZero, what)
	}
	return q, nil
}
