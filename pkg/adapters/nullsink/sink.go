// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/camview/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSessionJSON does nothing.
func (s *Sink) SaveSessionJSON(data []byte) error {
	return nil
}

// SaveLumaPlane does nothing.
func (s *Sink) SaveLumaPlane(index, width, height int, nv21 []byte) error {
	return nil
}

// SaveProcessedFrame does nothing.
func (s *Sink) SaveProcessedFrame(index, width, height int, rgba []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
