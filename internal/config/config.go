// Package config loads otfp settings from defaults, an optional YAML file
// and OTFP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the complete configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`
	Viewer ViewerConfig `mapstructure:"viewer" yaml:"viewer"`
}

// LoggerConfig selects log level, format and the optional rotated log file.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the terminal color of each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// EngineConfig tunes instantiation.
type EngineConfig struct {
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`
	// DefaultSilkWidth is a length expression such as "15mil" or "0.2mm".
	DefaultSilkWidth string `mapstructure:"default_silk_width" yaml:"default_silk_width"`
}

// ExportConfig tunes the footprint writers.
type ExportConfig struct {
	ArcStep        float64 `mapstructure:"arc_step_mm" yaml:"arc_step_mm"`
	KiCadSilkLayer string  `mapstructure:"kicad_silk_layer" yaml:"kicad_silk_layer"`
	PCBClearance   string  `mapstructure:"pcb_clearance" yaml:"pcb_clearance"`
}

// ViewerConfig sets the window size and what is drawn.
type ViewerConfig struct {
	Width            int  `mapstructure:"width" yaml:"width"`
	Height           int  `mapstructure:"height" yaml:"height"`
	ShowVectors      bool `mapstructure:"show_vectors" yaml:"show_vectors"`
	ShowFrames       bool `mapstructure:"show_frames" yaml:"show_frames"`
	ShowMeasurements bool `mapstructure:"show_measurements" yaml:"show_measurements"`
}

// SetDefaults initializes default values for every setting.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "otfp")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Engine --
	v.SetDefault("engine.max_iterations", 1000)
	v.SetDefault("engine.default_silk_width", "15mil")

	// -- Export --
	v.SetDefault("export.arc_step_mm", 0.1)
	v.SetDefault("export.kicad_silk_layer", "F.SilkS")
	v.SetDefault("export.pcb_clearance", "10mil")

	// -- Viewer --
	v.SetDefault("viewer.width", 1000)
	v.SetDefault("viewer.height", 800)
	v.SetDefault("viewer.show_vectors", true)
	v.SetDefault("viewer.show_frames", true)
	v.SetDefault("viewer.show_measurements", true)
}

// NewDefaultConfig returns the configuration made of defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper decodes and validates the settings held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Load reads defaults, then the YAML file at path if path is not empty,
// then OTFP_* environment variables (OTFP_ENGINE_MAX_ITERATIONS, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("OTFP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// Length evaluates a length expression such as "15mil" to internal units.
func Length(s string) (float64, error) {
	e, err := expr.Parse(s)
	if err != nil {
		return 0, err
	}
	return expr.EvalLength(e, nil)
}

// SilkWidth returns the default silk screen width in internal units.
func (c *Config) SilkWidth() (float64, error) {
	return Length(c.Engine.DefaultSilkWidth)
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalid, c.Logger.Format)
	}
	if c.Engine.MaxIterations <= 0 {
		return fmt.Errorf("%w: engine.max_iterations must be a positive integer", ErrInvalid)
	}
	if w, err := c.SilkWidth(); err != nil || w <= 0 {
		return fmt.Errorf("%w: engine.default_silk_width %q is not a positive length", ErrInvalid, c.Engine.DefaultSilkWidth)
	}
	if c.Export.ArcStep <= 0 {
		return fmt.Errorf("%w: export.arc_step_mm must be positive", ErrInvalid)
	}
	if w, err := Length(c.Export.PCBClearance); err != nil || w < 0 {
		return fmt.Errorf("%w: export.pcb_clearance %q is not a length", ErrInvalid, c.Export.PCBClearance)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer size must be positive", ErrInvalid)
	}
	return nil
}
