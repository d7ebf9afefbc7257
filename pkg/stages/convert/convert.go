// Package convert implements the planar-to-semi-planar format conversion
// stage on the capture side of the pipeline.
package convert

import (
	"context"
	"fmt"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

// Converter turns a planar YUV capture frame (independent row and pixel
// strides per plane) into a single semi-planar NV21 buffer: the luma plane
// followed by interleaved V,U chroma pairs at half resolution.
//
// The output buffer is owned by the converter and reused across calls; the
// caller must hand it off (the frame channel copies) before the next
// Convert.
type Converter struct {
	width  int
	height int
	out    []byte
}

// New creates a converter with fixed output dimensions. The dimensions
// never change for the lifetime of the converter.
func New(width, height int) (*Converter, error) {
	if err := pipeline.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return &Converter{
		width:  width,
		height: height,
		out:    make([]byte, pipeline.SemiPlanarSize(width, height)),
	}, nil
}

// Convert produces the NV21 buffer for frame. A frame whose dimensions
// differ from the configured width/height is a hard precondition violation:
// the call fails and the output buffer is left untouched.
func (c *Converter) Convert(frame ports.RawFrame) ([]byte, error) {
	if frame.Width != c.width || frame.Height != c.height {
		return nil, fmt.Errorf("frame size mismatch: expected %dx%d, got %dx%d",
			c.width, c.height, frame.Width, frame.Height)
	}
	if err := checkPlane(frame.Y, c.width, c.height); err != nil {
		return nil, fmt.Errorf("luma plane: %w", err)
	}
	halfW, halfH := c.width/2, c.height/2
	if err := checkPlane(frame.U, halfW, halfH); err != nil {
		return nil, fmt.Errorf("u plane: %w", err)
	}
	if err := checkPlane(frame.V, halfW, halfH); err != nil {
		return nil, fmt.Errorf("v plane: %w", err)
	}

	c.copyLuma(frame.Y)
	c.interleaveChroma(frame.V, frame.U)
	return c.out, nil
}

// Execute implements pipeline.Stage.
func (c *Converter) Execute(ctx context.Context, frame ports.RawFrame) ([]byte, error) {
	return c.Convert(frame)
}

// copyLuma fills out[0 : w*h]. Pixel stride 1 takes the row-copy fast path;
// padded layouts fall back to per-element addressing.
func (c *Converter) copyLuma(y ports.Plane) {
	w, h := c.width, c.height
	if y.PixelStride == 1 {
		for row := 0; row < h; row++ {
			src := row * y.RowStride
			copy(c.out[row*w:(row+1)*w], y.Data[src:src+w])
		}
		return
	}
	for row := 0; row < h; row++ {
		base := row * y.RowStride
		for col := 0; col < w; col++ {
			c.out[row*w+col] = y.Data[base+col*y.PixelStride]
		}
	}
}

// interleaveChroma fills out[w*h:] with V,U pairs at half resolution.
// NV21 stores V first.
func (c *Converter) interleaveChroma(v, u ports.Plane) {
	w := c.width
	halfW, halfH := c.width/2, c.height/2
	offset := w * c.height
	for row := 0; row < halfH; row++ {
		vBase := row * v.RowStride
		uBase := row * u.RowStride
		dst := offset + row*w
		for col := 0; col < halfW; col++ {
			c.out[dst+2*col] = v.Data[vBase+col*v.PixelStride]
			c.out[dst+2*col+1] = u.Data[uBase+col*u.PixelStride]
		}
	}
}

// checkPlane verifies the plane's backing slice covers every addressed
// element for a w x h grid.
func checkPlane(p ports.Plane, w, h int) error {
	if p.RowStride <= 0 || p.PixelStride <= 0 {
		return fmt.Errorf("invalid strides row=%d pixel=%d", p.RowStride, p.PixelStride)
	}
	need := (h-1)*p.RowStride + (w-1)*p.PixelStride + 1
	if len(p.Data) < need {
		return fmt.Errorf("plane too small: need %d bytes, have %d", need, len(p.Data))
	}
	return nil
}

var _ pipeline.Stage[ports.RawFrame, []byte] = (*Converter)(nil)
