// Package screencast provides a frame source backed by a Chrome screencast:
// a headless browser renders a page and every screencast frame is scaled
// and converted to planar YUV for the pipeline.
package screencast

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

// Options configures the screencast source.
type Options struct {
	URL        string
	Width      int
	Height     int
	Quality    int // JPEG quality 1-100
	ChromePath string
}

// Source implements ports.FrameSource on a Chrome screencast session.
type Source struct {
	opts   Options
	logger ports.Logger

	mu          sync.Mutex
	allocCancel context.CancelFunc
	cancel      context.CancelFunc
	browserCtx  context.Context
	started     bool

	scaled *image.RGBA

	// Two plane sets rotated between deliveries.
	planes [2]planeSet
	active int
}

type planeSet struct {
	y []byte
	u []byte
	v []byte
}

// New creates a screencast source.
func New(opts Options, log ports.Logger) (*Source, error) {
	if err := pipeline.ValidateDimensions(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	if opts.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 80
	}
	s := &Source{
		opts:   opts,
		logger: log.WithComponent("screencast"),
		scaled: image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
	}
	for i := range s.planes {
		s.planes[i] = planeSet{
			y: make([]byte, opts.Width*opts.Height),
			u: make([]byte, (opts.Width/2)*(opts.Height/2)),
			v: make([]byte, (opts.Width/2)*(opts.Height/2)),
		}
	}
	return s, nil
}

// Size returns the frame dimensions.
func (s *Source) Size() (int, int) {
	return s.opts.Width, s.opts.Height
}

// Start launches Chrome, navigates to the URL, and begins streaming frames.
// The returned channel closes when the context is canceled or Stop is
// called.
func (s *Source) Start(ctx context.Context) (<-chan ports.RawFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil, fmt.Errorf("source already started")
	}

	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(s.opts.Width, s.opts.Height),
	}
	chromePath := ResolveChromePath(s.opts.ChromePath)
	if chromePath == "" {
		return nil, fmt.Errorf("chrome not found: install Chrome/Chromium or set CHROME_PATH")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedpOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	s.logger.Debug("Launching browser")
	if err := chromedp.Run(browserCtx, chromedp.Navigate(s.opts.URL)); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("navigate: %w", err)
	}
	s.logger.Debug("Navigating to %s", s.opts.URL)

	out := make(chan ports.RawFrame, 1)
	jpegs := make(chan []byte, 4)

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		e, ok := ev.(*page.EventScreencastFrame)
		if !ok {
			return
		}
		data, err := base64.StdEncoding.DecodeString(e.Data)
		if err != nil {
			return
		}
		select {
		case jpegs <- data:
		default:
			// Decoder busy, skip frame.
		}
		go chromedp.Run(browserCtx, page.ScreencastFrameAck(e.SessionID))
	})

	if err := chromedp.Run(browserCtx,
		page.StartScreencast().
			WithFormat(page.ScreencastFormatJpeg).
			WithQuality(int64(s.opts.Quality)).
			WithEveryNthFrame(1),
	); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start screencast: %w", err)
	}

	s.allocCancel = allocCancel
	s.cancel = cancel
	s.browserCtx = browserCtx
	s.started = true
	s.logger.Debug("Starting screencast")

	go s.decodeLoop(browserCtx, jpegs, out)
	return out, nil
}

// decodeLoop turns JPEG screencast frames into planar YUV frames.
func (s *Source) decodeLoop(ctx context.Context, jpegs <-chan []byte, out chan<- ports.RawFrame) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-jpegs:
			frame, err := s.convert(data)
			if err != nil {
				s.logger.Debug("Frame conversion failed, dropping frame: %v", err)
				continue
			}
			select {
			case out <- frame:
			case <-ctx.Done():
				return
			}
		}
	}
}

// convert decodes a JPEG, scales it to the configured size, and splits it
// into Y/U/V planes in the inactive plane set.
func (s *Source) convert(data []byte) (ports.RawFrame, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return ports.RawFrame{}, fmt.Errorf("decode jpeg: %w", err)
	}
	draw.ApproxBiLinear.Scale(s.scaled, s.scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	s.active = 1 - s.active
	set := &s.planes[s.active]
	w, h := s.opts.Width, s.opts.Height
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*s.scaled.Stride + col*4
			y, cb, cr := color.RGBToYCbCr(s.scaled.Pix[i], s.scaled.Pix[i+1], s.scaled.Pix[i+2])
			set.y[row*w+col] = y
			if row%2 == 0 && col%2 == 0 {
				ci := (row/2)*(w/2) + col/2
				set.u[ci] = cb
				set.v[ci] = cr
			}
		}
	}

	halfW := w / 2
	return ports.RawFrame{
		Width:  w,
		Height: h,
		Y:      ports.Plane{Data: set.y, RowStride: w, PixelStride: 1},
		U:      ports.Plane{Data: set.u, RowStride: halfW, PixelStride: 1},
		V:      ports.Plane{Data: set.v, RowStride: halfW, PixelStride: 1},
	}, nil
}

// Stop ends the screencast and shuts the browser down. Idempotent.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.started = false

	_ = chromedp.Run(s.browserCtx, page.StopScreencast())
	s.cancel()
	s.allocCancel()
	s.logger.Debug("Browser closed")
	return nil
}

var _ ports.FrameSource = (*Source)(nil)
