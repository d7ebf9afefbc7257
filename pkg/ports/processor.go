package ports

// EffectMode selects the transform applied after color conversion.
type EffectMode int

const (
	// EffectPassthrough converts the frame to RGBA without further processing.
	EffectPassthrough EffectMode = iota
	// EffectGrayscale replaces color with replicated luma.
	EffectGrayscale
	// EffectEdgeDetect renders edge magnitudes as white on black.
	EffectEdgeDetect
)

// String returns the string representation of the effect mode.
func (m EffectMode) String() string {
	switch m {
	case EffectPassthrough:
		return "passthrough"
	case EffectGrayscale:
		return "grayscale"
	case EffectEdgeDetect:
		return "edges"
	default:
		return "unknown"
	}
}

// ParseEffectMode parses a string into an EffectMode.
// Unknown strings fall back to EffectPassthrough.
func ParseEffectMode(s string) EffectMode {
	switch s {
	case "grayscale", "gray":
		return EffectGrayscale
	case "edges", "edge", "canny":
		return EffectEdgeDetect
	default:
		return EffectPassthrough
	}
}

// ProcessorOptions carries tunable parameters for frame processors.
type ProcessorOptions struct {
	// EdgeLow and EdgeHigh are the double-threshold pair for edge
	// detection. Magnitudes >= EdgeHigh are strong edges; magnitudes in
	// [EdgeLow, EdgeHigh) survive only next to a strong edge.
	EdgeLow  int
	EdgeHigh int

	// Gain and Bias apply an optional brightness/contrast adjustment
	// before the effect stage: out = in*Gain + Bias. Gain 0 (or 1) with
	// Bias 0 disables the stage.
	Gain float64
	Bias int
}

// DefaultProcessorOptions returns the standard thresholds (80/160) with the
// adjustment stage disabled.
func DefaultProcessorOptions() ProcessorOptions {
	return ProcessorOptions{
		EdgeLow:  80,
		EdgeHigh: 160,
		Gain:     1.0,
		Bias:     0,
	}
}

// FrameProcessor converts one semi-planar NV21 frame into packed RGBA and
// applies the selected effect.
type FrameProcessor interface {
	// Process reads len == width*height*3/2 bytes from nv21 and writes
	// exactly width*height*4 bytes into dst. On any error dst must be
	// left untouched so the caller keeps presenting the previous frame.
	Process(nv21 []byte, width, height int, effect EffectMode, dst []byte) error

	// Close releases any resources held by the processor.
	Close() error
}
