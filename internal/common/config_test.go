package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_DefaultsWithoutFile(t *testing.T) {
	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, []string{"stdout"}, config.Logging.Output)
	assert.Equal(t, "./reports", config.Report.OutputDir)
	assert.Equal(t, []string{"json", "txt", "csv"}, config.Report.Formats)
}

func TestLoadFromFile_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoro.toml")
	content := `
[logging]
level = "debug"

[report]
output_dir = "./out"
formats = ["csv"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "./out", config.Report.OutputDir)
	assert.Equal(t, []string{"csv"}, config.Report.Formats)

	// Untouched sections keep defaults
	assert.Equal(t, []string{"stdout"}, config.Logging.Output)
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoro.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0644))

	t.Setenv("MEMORO_LOG_LEVEL", "warn")
	t.Setenv("MEMORO_FORMATS", "json, txt")

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, []string{"json", "txt"}, config.Report.Formats)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromFile_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memoro.toml")
	require.NoError(t, os.WriteFile(path, []byte("[report]\nformats = [\"xml\"]\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
