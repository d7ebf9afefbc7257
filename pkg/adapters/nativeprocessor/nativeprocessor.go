// Package nativeprocessor implements the frame processor in pure Go. It has
// no cgo or system dependencies, so it runs everywhere the module compiles
// and backs the processing tests. The cvprocessor adapter is the
// OpenCV-accelerated alternative.
package nativeprocessor

import (
	"fmt"
	"image/color"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

// Processor converts NV21 frames to RGBA and applies the selected effect.
// It keeps internal scratch buffers sized to the last frame and writes to
// the caller's destination only after the whole frame succeeded, so a
// failed call never corrupts the previous output.
type Processor struct {
	opts ports.ProcessorOptions

	rgba []byte // scratch output, copied to dst on success
	gray []byte // luma working plane for edge detection
	mag  []byte // thresholded gradient classes

	// lut maps a channel value through the gain/bias adjustment. nil when
	// the adjustment is disabled.
	lut []byte
}

// New creates a processor with the given options. Zero Gain is treated as
// the identity, matching the options default.
func New(opts ports.ProcessorOptions) *Processor {
	p := &Processor{opts: opts}
	if opts.Gain != 0 && (opts.Gain != 1.0 || opts.Bias != 0) {
		p.lut = make([]byte, 256)
		for i := range p.lut {
			p.lut[i] = clampByte(int(float64(i)*opts.Gain) + opts.Bias)
		}
	}
	return p
}

// Process implements ports.FrameProcessor.
func (p *Processor) Process(nv21 []byte, width, height int, effect ports.EffectMode, dst []byte) error {
	if err := pipeline.ValidateDimensions(width, height); err != nil {
		return err
	}
	if need := pipeline.SemiPlanarSize(width, height); len(nv21) < need {
		return fmt.Errorf("input too small: need %d bytes, have %d", need, len(nv21))
	}
	need := pipeline.PackedSize(width, height)
	if len(dst) < need {
		return fmt.Errorf("output too small: need %d bytes, have %d", need, len(dst))
	}
	if cap(p.rgba) < need {
		p.rgba = make([]byte, need)
	}
	p.rgba = p.rgba[:need]

	switch effect {
	case ports.EffectPassthrough:
		p.toRGBA(nv21, width, height)
	case ports.EffectGrayscale:
		p.toGrayRGBA(nv21, width, height)
	case ports.EffectEdgeDetect:
		p.toEdgeRGBA(nv21, width, height)
	default:
		return fmt.Errorf("unknown effect %d", effect)
	}

	if p.lut != nil && effect != ports.EffectEdgeDetect {
		for i := 0; i < need; i += 4 {
			p.rgba[i] = p.lut[p.rgba[i]]
			p.rgba[i+1] = p.lut[p.rgba[i+1]]
			p.rgba[i+2] = p.lut[p.rgba[i+2]]
		}
	}

	copy(dst[:need], p.rgba)
	return nil
}

// Close implements ports.FrameProcessor. The native processor holds no
// external resources.
func (p *Processor) Close() error {
	return nil
}

// toRGBA performs the full BT.601 color conversion. The chroma plane stores
// V first (NV21), sampled once per 2x2 luma block.
func (p *Processor) toRGBA(nv21 []byte, width, height int) {
	chromaOffset := width * height
	for row := 0; row < height; row++ {
		cBase := chromaOffset + (row/2)*width
		for col := 0; col < width; col++ {
			y := nv21[row*width+col]
			v := nv21[cBase+(col/2)*2]
			u := nv21[cBase+(col/2)*2+1]
			r, g, b := color.YCbCrToRGB(y, u, v)
			i := (row*width + col) * 4
			p.rgba[i] = r
			p.rgba[i+1] = g
			p.rgba[i+2] = b
			p.rgba[i+3] = 255
		}
	}
}

// toGrayRGBA replicates the luma plane into all three color channels. The
// chroma plane is ignored entirely.
func (p *Processor) toGrayRGBA(nv21 []byte, width, height int) {
	for i := 0; i < width*height; i++ {
		y := nv21[i]
		o := i * 4
		p.rgba[o] = y
		p.rgba[o+1] = y
		p.rgba[o+2] = y
		p.rgba[o+3] = 255
	}
}

// toEdgeRGBA renders edges white on black. Gradient magnitude comes from a
// 3x3 Sobel over the luma plane; the double threshold keeps strong edges
// unconditionally and weak ones only next to a strong neighbor.
func (p *Processor) toEdgeRGBA(nv21 []byte, width, height int) {
	n := width * height
	if cap(p.gray) < n {
		p.gray = make([]byte, n)
		p.mag = make([]byte, n)
	}
	p.gray = p.gray[:n]
	p.mag = p.mag[:n]
	copy(p.gray, nv21[:n])

	low, high := p.opts.EdgeLow, p.opts.EdgeHigh

	const (
		none   = 0
		weak   = 1
		strong = 2
	)
	for i := range p.mag {
		p.mag[i] = none
	}
	for row := 1; row < height-1; row++ {
		for col := 1; col < width-1; col++ {
			i := row*width + col
			gx := int(p.gray[i-width+1]) + 2*int(p.gray[i+1]) + int(p.gray[i+width+1]) -
				int(p.gray[i-width-1]) - 2*int(p.gray[i-1]) - int(p.gray[i+width-1])
			gy := int(p.gray[i+width-1]) + 2*int(p.gray[i+width]) + int(p.gray[i+width+1]) -
				int(p.gray[i-width-1]) - 2*int(p.gray[i-width]) - int(p.gray[i-width+1])
			m := abs(gx) + abs(gy)
			switch {
			case m >= high:
				p.mag[i] = strong
			case m >= low:
				p.mag[i] = weak
			}
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := row*width + col
			on := p.mag[i] == strong ||
				(p.mag[i] == weak && p.hasStrongNeighbor(row, col, width, height))
			o := i * 4
			if on {
				p.rgba[o] = 255
				p.rgba[o+1] = 255
				p.rgba[o+2] = 255
			} else {
				p.rgba[o] = 0
				p.rgba[o+1] = 0
				p.rgba[o+2] = 0
			}
			p.rgba[o+3] = 255
		}
	}
}

func (p *Processor) hasStrongNeighbor(row, col, width, height int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= height || c < 0 || c >= width {
				continue
			}
			if p.mag[r*width+c] == 2 {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

var _ ports.FrameProcessor = (*Processor)(nil)
