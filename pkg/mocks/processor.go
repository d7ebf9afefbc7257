// Package mocks provides mock implementations for testing.
package mocks

import (
	"github.com/user/camview/pkg/ports"
)

// Processor is a mock implementation of ports.FrameProcessor.
type Processor struct {
	ProcessFunc func(nv21 []byte, width, height int, effect ports.EffectMode, dst []byte) error
	CloseFunc   func() error

	// Calls records the effect mode of each Process invocation.
	Calls []ports.EffectMode
}

func (m *Processor) Process(nv21 []byte, width, height int, effect ports.EffectMode, dst []byte) error {
	m.Calls = append(m.Calls, effect)
	if m.ProcessFunc != nil {
		return m.ProcessFunc(nv21, width, height, effect, dst)
	}
	for i := range dst {
		dst[i] = 0
	}
	return nil
}

func (m *Processor) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
