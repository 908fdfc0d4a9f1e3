// Package config handles vitrine configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/vitrine/pkg/render"
)

// Config holds all viewer settings.
type Config struct {
	Viewer   ViewerConfig   `yaml:"viewer" toml:"viewer"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Sections SectionsConfig `yaml:"sections" toml:"sections"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// ViewerConfig holds canvas and renderer settings.
type ViewerConfig struct {
	FPS         int     `yaml:"fps" toml:"fps"`
	Antialias   bool    `yaml:"antialias" toml:"antialias"`
	ToneMapping string  `yaml:"tone_mapping" toml:"tone_mapping"` // aces, linear, none
	Exposure    float64 `yaml:"exposure" toml:"exposure"`
	ClearColor  string  `yaml:"clear_color" toml:"clear_color"`
	CanvasRatio float64 `yaml:"canvas_ratio" toml:"canvas_ratio"` // Share of columns given to the canvas
	FitSize     float64 `yaml:"fit_size" toml:"fit_size"`         // Models are rescaled to this extent; 0 keeps source units
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	ModelsDir   string `yaml:"models_dir" toml:"models_dir"`
	Environment string `yaml:"environment" toml:"environment"`
	Catalog     string `yaml:"catalog" toml:"catalog"` // Empty uses the built-in catalog
	Story       string `yaml:"story" toml:"story"`     // Empty uses the built-in story
}

// SectionsConfig holds scroll tracking settings.
type SectionsConfig struct {
	ThresholdRows int  `yaml:"threshold_rows" toml:"threshold_rows"`
	Watch         bool `yaml:"watch" toml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the stock showcase settings.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			FPS:         30,
			Antialias:   true,
			ToneMapping: "aces",
			Exposure:    0.8,
			ClearColor:  "#ffffff",
			CanvasRatio: 0.6,
			FitSize:     2,
		},
		Assets: AssetsConfig{
			ModelsDir:   "./models",
			Environment: "./textures/abandoned_greenhouse_1k.hdr",
		},
		Sections: SectionsConfig{
			ThresholdRows: 6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "vitrine.log",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewer.FPS <= 0 {
		errs = append(errs, fmt.Errorf("viewer.fps must be positive, got %d", c.Viewer.FPS))
	}
	if c.Viewer.Exposure <= 0 {
		errs = append(errs, fmt.Errorf("viewer.exposure must be positive, got %v", c.Viewer.Exposure))
	}
	if c.Viewer.CanvasRatio <= 0 || c.Viewer.CanvasRatio > 1 {
		errs = append(errs, fmt.Errorf("viewer.canvas_ratio must be in (0, 1], got %v", c.Viewer.CanvasRatio))
	}
	if c.Viewer.FitSize < 0 {
		errs = append(errs, fmt.Errorf("viewer.fit_size must not be negative, got %v", c.Viewer.FitSize))
	}
	if _, err := render.ParseHexColor(c.Viewer.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("viewer.clear_color: %w", err))
	}
	if c.Sections.ThresholdRows < 0 {
		errs = append(errs, fmt.Errorf("sections.threshold_rows must not be negative, got %d", c.Sections.ThresholdRows))
	}
	if c.Assets.ModelsDir == "" {
		errs = append(errs, errors.New("assets.models_dir is required"))
	}
	return errors.Join(errs...)
}
