// Package config provides configuration management for slidechart.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/slidechart-go/internal/logger"
	"github.com/ukaji3/slidechart-go/pkg/slidechart"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/output"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidPaletteColor = errors.New("chart.palette entries must be #RGB or #RRGGBB colors")
	ErrInvalidSheetName    = errors.New("export.sheet_name must be 1-31 characters without []:*?/\\")
	ErrInvalidAnchorCell   = errors.New("export.anchor_cell must be a cell name such as E2")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error, disabled")
)

// Config represents the complete slidechart configuration.
type Config struct {
	Chart   ChartConfig   `yaml:"chart"`
	Export  ExportConfig  `yaml:"export"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// ChartConfig contains chart defaults.
type ChartConfig struct {
	Palette []string `yaml:"palette"`
}

// ExportConfig defines workbook export layout.
type ExportConfig struct {
	SheetName  string `yaml:"sheet_name"`
	AnchorCell string `yaml:"anchor_cell"`
	Width      uint   `yaml:"width"`
	Height     uint   `yaml:"height"`
}

// ImportConfig defines workbook import behavior.
type ImportConfig struct {
	IncludeTables bool `yaml:"include_tables"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Palette: append([]string(nil), slidechart.DefaultPalette...),
		},
		Export: ExportConfig{
			SheetName:  output.DefaultSheetName,
			AnchorCell: output.DefaultAnchorCell,
			Width:      output.DefaultWidth,
			Height:     output.DefaultHeight,
		},
		Logging: LoggingConfig{
			Level: string(logger.InfoLevel),
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for i, color := range c.Chart.Palette {
		if !slidechart.IsHex(color) {
			return fmt.Errorf("%w: palette[%d] = %q", ErrInvalidPaletteColor, i, color)
		}
	}

	if name := c.Export.SheetName; name != "" {
		if len([]rune(name)) > 31 || strings.ContainsAny(name, `[]:*?/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidSheetName, name)
		}
	}

	if cell := c.Export.AnchorCell; cell != "" {
		if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidAnchorCell, cell)
		}
	}

	if level := strings.ToLower(strings.TrimSpace(c.Logging.Level)); level != "" {
		if logger.ParseLevel(level) != logger.LogLevel(level) {
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
		}
	}

	return nil
}

// Palette returns the configured palette, or the default when none is set.
func (c *Config) Palette() slidechart.Palette {
	if len(c.Chart.Palette) == 0 {
		return slidechart.DefaultPalette.Resolved()
	}
	return slidechart.Palette(c.Chart.Palette).Resolved()
}

// XLSXOptions returns the workbook export options.
func (c *Config) XLSXOptions() output.XLSXOptions {
	return output.XLSXOptions{
		SheetName:  c.Export.SheetName,
		AnchorCell: c.Export.AnchorCell,
		Width:      c.Export.Width,
		Height:     c.Export.Height,
	}
}

// ImportOptions returns the workbook import options.
func (c *Config) ImportOptions(log logger.Logger) slidechart.ImportOptions {
	includeTables := c.Import.IncludeTables
	return slidechart.ImportOptions{
		Palette:       c.Palette(),
		IncludeTables: &includeTables,
		Logger:        log,
	}
}

// LoggerConfig returns the logger configuration. levelOverride, when set,
// wins over logging.level.
func (c *Config) LoggerConfig(levelOverride string) *logger.Config {
	cfg := logger.DefaultConfig()
	level := c.Logging.Level
	if levelOverride != "" {
		level = levelOverride
	}
	cfg.Level = logger.ParseLevel(level)
	cfg.JSON = c.Logging.JSON
	return cfg
}
