// Package cvprocessor implements the frame processor on OpenCV through
// gocv. It matches the native processor's contract while using the
// library's color conversion and Canny edge detector.
package cvprocessor

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

// Processor converts NV21 frames to RGBA with OpenCV. Working Mats are
// allocated once and reused across frames; Close releases them.
type Processor struct {
	opts ports.ProcessorOptions

	rgba  gocv.Mat
	gray  gocv.Mat
	edges gocv.Mat
	out   gocv.Mat
}

// New creates a processor with the given options.
func New(opts ports.ProcessorOptions) *Processor {
	return &Processor{
		opts:  opts,
		rgba:  gocv.NewMat(),
		gray:  gocv.NewMat(),
		edges: gocv.NewMat(),
		out:   gocv.NewMat(),
	}
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

	// NV21 as a single-channel Mat: luma rows followed by interleaved
	// chroma rows, height*3/2 rows total.
	yuv, err := gocv.NewMatFromBytes(height*3/2, width, gocv.MatTypeCV8UC1, nv21[:pipeline.SemiPlanarSize(width, height)])
	if err != nil {
		return fmt.Errorf("wrap nv21 buffer: %w", err)
	}
	defer yuv.Close()

	if err := gocv.CvtColor(yuv, &p.rgba, gocv.ColorYUVToRGBANV21); err != nil {
		return fmt.Errorf("yuv to rgba: %w", err)
	}

	var result *gocv.Mat
	switch effect {
	case ports.EffectPassthrough:
		result = &p.rgba
	case ports.EffectGrayscale:
		if err := gocv.CvtColor(p.rgba, &p.gray, gocv.ColorRGBAToGray); err != nil {
			return fmt.Errorf("rgba to gray: %w", err)
		}
		if err := gocv.CvtColor(p.gray, &p.out, gocv.ColorGrayToBGRA); err != nil {
			return fmt.Errorf("gray to rgba: %w", err)
		}
		result = &p.out
	case ports.EffectEdgeDetect:
		if err := gocv.CvtColor(p.rgba, &p.gray, gocv.ColorRGBAToGray); err != nil {
			return fmt.Errorf("rgba to gray: %w", err)
		}
		if err := gocv.Canny(p.gray, &p.edges, float32(p.opts.EdgeLow), float32(p.opts.EdgeHigh)); err != nil {
			return fmt.Errorf("canny: %w", err)
		}
		if err := gocv.CvtColor(p.edges, &p.out, gocv.ColorGrayToBGRA); err != nil {
			return fmt.Errorf("edges to rgba: %w", err)
		}
		result = &p.out
	default:
		return fmt.Errorf("unknown effect %d", effect)
	}

	if p.adjustmentEnabled() && effect != ports.EffectEdgeDetect {
		result.ConvertToWithParams(result, result.Type(), float32(p.opts.Gain), float32(p.opts.Bias))
	}

	data, err := result.DataPtrUint8()
	if err != nil {
		return fmt.Errorf("read result: %w", err)
	}
	if len(data) < need {
		return fmt.Errorf("unexpected result size %d", len(data))
	}
	copy(dst[:need], data)
	return nil
}

func (p *Processor) adjustmentEnabled() bool {
	return p.opts.Gain != 0 && (p.opts.Gain != 1.0 || p.opts.Bias != 0)
}

// Close releases the reused Mats.
func (p *Processor) Close() error {
	for _, m := range []*gocv.Mat{&p.rgba, &p.gray, &p.edges, &p.out} {
		if err := m.Close(); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.FrameProcessor = (*Processor)(nil)
