package pipeline

import (
	"fmt"

	"github.com/user/camview/pkg/ports"
)

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// SemiPlanarSize returns the byte size of a semi-planar (NV21) buffer for
// the given dimensions: a full-resolution luma plane followed by one
// interleaved half-resolution chroma plane.
func SemiPlanarSize(width, height int) int {
	return width * height * 3 / 2
}

// PackedSize returns the byte size of a packed RGBA buffer for the given
// dimensions (one byte per channel, four channels).
func PackedSize(width, height int) int {
	return width * height * 4
}

// ValidateDimensions rejects dimensions the pipeline cannot represent.
// Both sides must be positive and even because the chroma plane is
// sub-sampled 2x2.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("dimensions %dx%d must be even for 4:2:0 chroma", width, height)
	}
	return nil
}

// ProcessInput carries one semi-planar frame into the processing stage.
type ProcessInput struct {
	// Data is the NV21 buffer, exactly SemiPlanarSize(Width, Height) bytes.
	Data   []byte
	Width  int
	Height int

	// Effect selects the transform applied after color conversion.
	Effect ports.EffectMode
}
