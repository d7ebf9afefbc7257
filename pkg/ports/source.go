package ports

import "context"

// FrameSource abstracts a capture device producing raw planar frames on its
// own schedule (camera, screencast, synthetic generator).
type FrameSource interface {
	// Size returns the frame dimensions the source produces.
	Size() (width, height int)

	// Start begins capture and returns the frame channel. Frames are only
	// valid until the receiver takes the next one; see RawFrame. The
	// channel is closed when the source stops or ctx is cancelled.
	Start(ctx context.Context) (<-chan RawFrame, error)

	// Stop ends capture and releases source resources. Safe to call after
	// the context is cancelled.
	Stop() error
}
