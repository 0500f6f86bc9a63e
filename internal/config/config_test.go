package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slidechart-go/internal/logger"
	"github.com/ukaji3/slidechart-go/pkg/slidechart"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	return configPath
}

const validConfigYAML = `
chart:
  palette: ["#abc", "112233"]
export:
  sheet_name: "Slide Data"
  anchor_cell: "H4"
import:
  include_tables: true
logging:
  level: debug
  json: true
`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, slidechart.Palette{"#AABBCC", "#112233"}, cfg.Palette())
	assert.Equal(t, "Slide Data", cfg.Export.SheetName)
	assert.Equal(t, "H4", cfg.Export.AnchorCell)
	assert.True(t, cfg.Import.IncludeTables)

	// Unset keys keep their defaults.
	assert.Equal(t, Default().Export.Width, cfg.Export.Width)
	assert.Equal(t, Default().Export.Height, cfg.Export.Height)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(createTempConfigFile(t, "chart: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"bad palette color", func(c *Config) { c.Chart.Palette = []string{"#2563EB", "blue"} }, ErrInvalidPaletteColor},
		{"sheet name too long", func(c *Config) { c.Export.SheetName = "abcdefghijklmnopqrstuvwxyz0123456" }, ErrInvalidSheetName},
		{"sheet name with colon", func(c *Config) { c.Export.SheetName = "a:b" }, ErrInvalidSheetName},
		{"bad anchor", func(c *Config) { c.Export.AnchorCell = "2E" }, ErrInvalidAnchorCell},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"level case-insensitive", func(c *Config) { c.Logging.Level = "WARN" }, nil},
		{"empty palette", func(c *Config) { c.Chart.Palette = nil }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Chart.Palette = []string{"#FF0000"}
	cfg.Export.AnchorCell = "B2"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigAdapters(t *testing.T) {
	cfg := Default()
	cfg.Chart.Palette = nil
	assert.Equal(t, slidechart.DefaultPalette.Resolved(), cfg.Palette())

	xlsx := cfg.XLSXOptions()
	assert.Equal(t, cfg.Export.SheetName, xlsx.SheetName)
	assert.Equal(t, cfg.Export.Width, xlsx.Width)

	opts := cfg.ImportOptions(nil)
	assert.False(t, opts.ShouldIncludeTables())

	logCfg := cfg.LoggerConfig("")
	assert.Equal(t, logger.InfoLevel, logCfg.Level)
	assert.Equal(t, logger.DebugLevel, cfg.LoggerConfig("debug").Level)
}
