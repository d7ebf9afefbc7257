// Package summarizer provides summary generation for preview sessions.
package summarizer

import (
	"time"

	"github.com/user/camview/pkg/ports"
)

// Summary contains all data collected during a preview session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Session configuration
	Session SessionInfo

	// Frame counters
	Frames FrameInfo

	// Timing results
	Timing TimingInfo
}

// SessionInfo describes the pipeline configuration of the session.
type SessionInfo struct {
	Source    string
	Processor string
	Width     int
	Height    int
	Effect    ports.EffectMode

	// Rendering fell back to clear-only draws after a GL failure.
	Degraded bool
}

// FrameInfo contains the frame flow counters.
type FrameInfo struct {
	Received       uint64
	Overwritten    uint64
	Dropped        uint64
	Rejected       uint64
	Processed      int
	Errors         int
	Uploaded       int
	DrawCalls      uint64
	EffectSwitches uint64
}

// TimingInfo contains timing measurements.
type TimingInfo struct {
	DurationMs int
	AverageFPS float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets the session configuration.
func (b *Builder) WithSession(session SessionInfo) *Builder {
	b.summary.Session = session
	return b
}

// WithFrames sets the frame counters.
func (b *Builder) WithFrames(frames FrameInfo) *Builder {
	b.summary.Frames = frames
	return b
}

// WithTiming sets timing information. Average FPS is derived from the draw
// call count when the duration is known.
func (b *Builder) WithTiming(durationMs int) *Builder {
	b.summary.Timing.DurationMs = durationMs
	if durationMs > 0 {
		b.summary.Timing.AverageFPS = float64(b.summary.Frames.DrawCalls) / (float64(durationMs) / 1000.0)
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
