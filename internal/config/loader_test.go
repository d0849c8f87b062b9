package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitreview/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Search from an empty directory so no real config file is found.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTool, cfg.Tool)
	assert.Equal(t, config.DefaultIterations, cfg.Iterations)
	assert.Equal(t, config.DefaultSignificance, cfg.Significance)
	assert.Equal(t, config.DefaultErrorDelta, cfg.ErrorDelta)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitreview.yaml")

	content := []byte("tool: cppcheck\niterations: 25\nsignificance: lines-only\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cppcheck", cfg.Tool)
	assert.Equal(t, 25, cfg.Iterations)
	assert.Equal(t, "lines-only", cfg.Significance)
	assert.Equal(t, config.DefaultFormat, cfg.Format, "unset keys keep defaults")
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitreview.yaml")

	require.NoError(t, os.WriteFile(path, []byte("iterations: -1\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrNonPositiveIterations)
}

func TestConfig_ValidateFormat(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Iterations: 10, Format: "xml"}

	require.ErrorIs(t, cfg.Validate(), config.ErrUnknownFormat)
}
