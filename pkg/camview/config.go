// Package camview provides a high-level API for building camera preview
// pipelines.
package camview

import (
	"github.com/user/camview/pkg/orchestrator"
	"github.com/user/camview/pkg/ports"
)

// SizePreset represents a frame size preset name.
type SizePreset string

const (
	SizeVGA SizePreset = "vga"
	SizeHD  SizePreset = "hd"
)

// SizeSettings contains frame dimensions for a preset.
type SizeSettings struct {
	Width  int
	Height int
}

// GetSizeSettings returns the dimensions for the given preset.
func GetSizeSettings(preset SizePreset) SizeSettings {
	switch preset {
	case SizeHD:
		return SizeSettings{Width: 1280, Height: 720}
	default: // vga
		return SizeSettings{Width: 640, Height: 480}
	}
}

// Config represents the configuration for a camview pipeline.
type Config struct {
	// Frame size
	Width  int // Frame width in pixels (must be even)
	Height int // Frame height in pixels (must be even)

	// Processing
	Effect   ports.EffectMode // Initial effect
	EdgeLow  int              // Lower edge detection threshold
	EdgeHigh int              // Upper edge detection threshold
	Gain     float64          // Brightness/contrast gain (1.0 = identity)
	Bias     int              // Brightness/contrast bias

	// Source
	FPS int // Frame rate for synthetic sources
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with VGA preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: vgaDefaults(),
	}
}

// NewHDConfigBuilder creates a new ConfigBuilder with HD preset defaults.
func NewHDConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: hdDefaults(),
	}
}

// vgaDefaults returns the VGA preset configuration.
func vgaDefaults() Config {
	return Config{
		Width:  640,
		Height: 480,

		Effect:   ports.EffectPassthrough,
		EdgeLow:  80,
		EdgeHigh: 160,
		Gain:     1.0,

		FPS: 30,
	}
}

// hdDefaults returns the HD preset configuration.
func hdDefaults() Config {
	return Config{
		Width:  1280,
		Height: 720,

		Effect:   ports.EffectPassthrough,
		EdgeLow:  80,
		EdgeHigh: 160,
		Gain:     1.0,

		FPS: 30,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Round odd dimensions down to even; 4:2:0 chroma needs even sides.
	cfg.Width = cfg.Width &^ 1
	cfg.Height = cfg.Height &^ 1
	if cfg.Width < 2 {
		cfg.Width = 2
	}
	if cfg.Height < 2 {
		cfg.Height = 2
	}

	if cfg.EdgeLow < 0 {
		cfg.EdgeLow = 0
	}
	if cfg.EdgeHigh < cfg.EdgeLow {
		cfg.EdgeHigh = cfg.EdgeLow
	}
	if cfg.FPS < 1 {
		cfg.FPS = 1
	}

	return cfg
}

// WithWidth sets the frame width. Odd values are rounded down to even.
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.config.Width = width
	return b
}

// WithHeight sets the frame height. Odd values are rounded down to even.
func (b *ConfigBuilder) WithHeight(height int) *ConfigBuilder {
	b.config.Height = height
	return b
}

// WithSizePreset applies a size preset (vga, hd).
func (b *ConfigBuilder) WithSizePreset(preset SizePreset) *ConfigBuilder {
	settings := GetSizeSettings(preset)
	b.config.Width = settings.Width
	b.config.Height = settings.Height
	return b
}

// WithEffect sets the initial effect.
func (b *ConfigBuilder) WithEffect(effect ports.EffectMode) *ConfigBuilder {
	b.config.Effect = effect
	return b
}

// WithEdgeThresholds sets the edge detection threshold pair.
func (b *ConfigBuilder) WithEdgeThresholds(low, high int) *ConfigBuilder {
	b.config.EdgeLow = low
	b.config.EdgeHigh = high
	return b
}

// WithAdjustment sets the brightness/contrast gain and bias.
func (b *ConfigBuilder) WithAdjustment(gain float64, bias int) *ConfigBuilder {
	b.config.Gain = gain
	b.config.Bias = bias
	return b
}

// WithFPS sets the frame rate for synthetic sources.
func (b *ConfigBuilder) WithFPS(fps int) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// ToOrchestratorConfig converts the facade Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Width:    c.Width,
		Height:   c.Height,
		Effect:   c.Effect,
		EdgeLow:  c.EdgeLow,
		EdgeHigh: c.EdgeHigh,
	}
}

// ProcessorOptions converts the facade Config to ports.ProcessorOptions.
func (c Config) ProcessorOptions() ports.ProcessorOptions {
	return ports.ProcessorOptions{
		EdgeLow:  c.EdgeLow,
		EdgeHigh: c.EdgeHigh,
		Gain:     c.Gain,
		Bias:     c.Bias,
	}
}
