package cmd

import (
	"path/filepath"
	"testing"

	"github.com/rustyeddy/lotsize/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lotsize.yaml")

	out := execute(t, "config", "init", "-o", path)
	assert.Contains(t, out, "Wrote default settings to "+path)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Gold, cfg.Gold)

	out = execute(t, "config", "validate", "-f", path)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Rates:   exchangerate-api")
}
