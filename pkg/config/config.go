// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/camview/pkg/camview"
	"github.com/user/camview/pkg/ports"
)

// Config represents the full configuration for camview.
type Config struct {
	// Frame dimensions (must be even)
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Source
	Source     string `yaml:"source"` // testpattern | screencast
	URL        string `yaml:"url"`
	FPS        int    `yaml:"fps"`
	Quality    int    `yaml:"quality"` // screencast JPEG quality
	ChromePath string `yaml:"chrome_path"`

	// Processing
	Processor string  `yaml:"processor"` // native | opencv
	Effect    string  `yaml:"effect"`    // passthrough | grayscale | edges
	EdgeLow   int     `yaml:"edge_low"`
	EdgeHigh  int     `yaml:"edge_high"`
	Gain      float64 `yaml:"gain"`
	Bias      int     `yaml:"bias"`

	// Session
	DurationMs  int    `yaml:"duration_ms"` // 0 = run until interrupted
	SummaryPath string `yaml:"summary"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Width:  640,
		Height: 480,

		Source:  "testpattern",
		FPS:     30,
		Quality: 80,

		Processor: "native",
		Effect:    "passthrough",
		EdgeLow:   80,
		EdgeHigh:  160,
		Gain:      1.0,
		Bias:      0,

		DebugDir: "./debug",
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Pipeline converts the file settings into a validated pipeline
// configuration through the camview builder, which applies its clamping
// rules (even dimensions, ordered thresholds, minimum fps).
func (c Config) Pipeline() camview.Config {
	return camview.NewConfigBuilder().
		WithWidth(c.Width).
		WithHeight(c.Height).
		WithEffect(ports.ParseEffectMode(c.Effect)).
		WithEdgeThresholds(c.EdgeLow, c.EdgeHigh).
		WithAdjustment(c.Gain, c.Bias).
		WithFPS(c.FPS).
		Build()
}
