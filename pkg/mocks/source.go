package mocks

import (
	"context"

	"github.com/user/camview/pkg/ports"
)

// Source is a mock implementation of ports.FrameSource.
type Source struct {
	Width  int
	Height int

	StartFunc func(ctx context.Context) (<-chan ports.RawFrame, error)
	StopFunc  func() error

	// Frames is delivered on Start when StartFunc is nil; the channel is
	// closed after the last frame.
	Frames []ports.RawFrame
}

func (m *Source) Size() (int, int) {
	return m.Width, m.Height
}

func (m *Source) Start(ctx context.Context) (<-chan ports.RawFrame, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx)
	}
	ch := make(chan ports.RawFrame, len(m.Frames))
	for _, f := range m.Frames {
		ch <- f
	}
	close(ch)
	return ch, nil
}

func (m *Source) Stop() error {
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}
