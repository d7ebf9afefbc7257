package camview

import (
	"testing"

	"github.com/user/camview/pkg/ports"
)

func TestNewConfigBuilder_VGADefaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Effect != ports.EffectPassthrough {
		t.Errorf("expected passthrough default, got %v", cfg.Effect)
	}
	if cfg.EdgeLow != 80 || cfg.EdgeHigh != 160 {
		t.Errorf("expected 80/160 thresholds, got %d/%d", cfg.EdgeLow, cfg.EdgeHigh)
	}
}

func TestNewHDConfigBuilder(t *testing.T) {
	cfg := NewHDConfigBuilder().Build()
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestBuild_RoundsOddDimensionsDown(t *testing.T) {
	cfg := NewConfigBuilder().WithWidth(641).WithHeight(481).Build()
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestBuild_EnforcesMinimums(t *testing.T) {
	cfg := NewConfigBuilder().WithWidth(0).WithHeight(-4).WithFPS(0).Build()
	if cfg.Width != 2 || cfg.Height != 2 {
		t.Errorf("expected 2x2 minimum, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 1 {
		t.Errorf("expected fps 1 minimum, got %d", cfg.FPS)
	}
}

func TestBuild_OrdersThresholds(t *testing.T) {
	cfg := NewConfigBuilder().WithEdgeThresholds(200, 100).Build()
	if cfg.EdgeHigh < cfg.EdgeLow {
		t.Errorf("expected ordered thresholds, got %d/%d", cfg.EdgeLow, cfg.EdgeHigh)
	}

	cfg = NewConfigBuilder().WithEdgeThresholds(-5, 100).Build()
	if cfg.EdgeLow != 0 {
		t.Errorf("expected low clamped to 0, got %d", cfg.EdgeLow)
	}
}

func TestWithSizePreset(t *testing.T) {
	cfg := NewConfigBuilder().WithSizePreset(SizeHD).Build()
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("expected HD preset, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestFluentChain(t *testing.T) {
	cfg := NewConfigBuilder().
		WithSizePreset(SizeVGA).
		WithEffect(ports.EffectEdgeDetect).
		WithEdgeThresholds(60, 120).
		WithAdjustment(1.2, 10).
		WithFPS(24).
		Build()

	ocfg := cfg.ToOrchestratorConfig()
	if ocfg.Effect != ports.EffectEdgeDetect || ocfg.EdgeLow != 60 || ocfg.EdgeHigh != 120 {
		t.Errorf("unexpected orchestrator config: %+v", ocfg)
	}
	opts := cfg.ProcessorOptions()
	if opts.Gain != 1.2 || opts.Bias != 10 {
		t.Errorf("unexpected processor options: %+v", opts)
	}
}
