// Package testpattern provides a synthetic frame source: an animated
// pattern rendered with gg and delivered as planar YUV, so the whole
// pipeline can run without a camera or browser.
package testpattern

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

// lumaPad widens the luma row stride past the pixel width so consumers get
// exercised against padded layouts, like real camera buffers.
const lumaPad = 16

// Source renders frames at a fixed rate. The planes it emits use a padded
// row stride and pixel stride 1.
type Source struct {
	width  int
	height int
	fps    int
	logger ports.Logger

	dc *gg.Context

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool

	// Two plane sets rotated between deliveries so the frame being read
	// is never the one being rendered into.
	planes [2]planeSet
	active int
}

type planeSet struct {
	y []byte
	u []byte
	v []byte
}

// New creates a test pattern source.
func New(width, height, fps int, log ports.Logger) (*Source, error) {
	if err := pipeline.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	s := &Source{
		width:  width,
		height: height,
		fps:    fps,
		logger: log.WithComponent("testpattern"),
		dc:     gg.NewContext(width, height),
	}
	for i := range s.planes {
		s.planes[i] = planeSet{
			y: make([]byte, (width+lumaPad)*height),
			u: make([]byte, (width/2)*(height/2)),
			v: make([]byte, (width/2)*(height/2)),
		}
	}
	return s, nil
}

// Size returns the frame dimensions.
func (s *Source) Size() (int, int) {
	return s.width, s.height
}

// Start begins frame delivery. The returned channel closes when the context
// is canceled or Stop is called.
func (s *Source) Start(ctx context.Context) (<-chan ports.RawFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil, fmt.Errorf("source already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true

	out := make(chan ports.RawFrame)
	go s.run(ctx, out)
	s.logger.Debug("Frame source started: %dx%d", s.width, s.height)
	return out, nil
}

// Stop halts frame delivery and waits for the render goroutine to exit.
func (s *Source) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Debug("Frame source stopped")
	return nil
}

func (s *Source) run(ctx context.Context, out chan<- ports.RawFrame) {
	defer close(out)
	defer close(s.done)

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			raw := s.renderFrame(frame)
			frame++
			select {
			case out <- raw:
			case <-ctx.Done():
				return
			}
		}
	}
}

// renderFrame draws the pattern for frame n and converts it to planar YUV
// in the inactive plane set.
func (s *Source) renderFrame(n int) ports.RawFrame {
	w, h := float64(s.width), float64(s.height)
	t := float64(n) / float64(s.fps)

	// Moving gradient background with an orbiting disc: enough structure
	// for edges, enough motion to see latest-wins behavior.
	s.dc.SetColor(color.RGBA{R: byte(40 + 20*n%60), G: 40, B: 80, A: 255})
	s.dc.Clear()
	for i := 0; i < 8; i++ {
		x := w * float64(i) / 8
		s.dc.SetRGB(float64(i)/8, 0.2, 0.6)
		s.dc.DrawRectangle(x, 0, w/16, h)
		s.dc.Fill()
	}
	cx := w/2 + w/3*math.Cos(t)
	cy := h/2 + h/3*math.Sin(t)
	s.dc.SetRGB(1, 1, 1)
	s.dc.DrawCircle(cx, cy, h/8)
	s.dc.Fill()

	s.active = 1 - s.active
	set := &s.planes[s.active]
	s.convert(set)

	halfW := s.width / 2
	return ports.RawFrame{
		Width:  s.width,
		Height: s.height,
		Y:      ports.Plane{Data: set.y, RowStride: s.width + lumaPad, PixelStride: 1},
		U:      ports.Plane{Data: set.u, RowStride: halfW, PixelStride: 1},
		V:      ports.Plane{Data: set.v, RowStride: halfW, PixelStride: 1},
	}
}

// convert downsamples the rendered RGBA canvas into planar 4:2:0 YUV.
// Chroma is sampled from the top-left pixel of each 2x2 block.
func (s *Source) convert(set *planeSet) {
	img := s.dc.Image()
	rowStride := s.width + lumaPad
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			r, g, b, _ := img.At(col, row).RGBA()
			y, cb, cr := color.RGBToYCbCr(byte(r>>8), byte(g>>8), byte(b>>8))
			set.y[row*rowStride+col] = y
			if row%2 == 0 && col%2 == 0 {
				i := (row/2)*(s.width/2) + col/2
				set.u[i] = cb
				set.v[i] = cr
			}
		}
	}
}

var _ ports.FrameSource = (*Source)(nil)
