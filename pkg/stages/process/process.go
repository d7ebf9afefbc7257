// Package process implements the effect processing stage: NV21 in, packed
// RGBA out, with the selected effect applied in between.
package process

import (
	"context"
	"fmt"

	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

// dumpEvery is the debug dump interval in processed frames. PNG encoding
// runs on the draw thread, so dumping every frame would stall it.
const dumpEvery = 30

// Stage wraps a frame processor with buffer management, the fail-soft
// policy, and periodic debug dumps. The RGBA output buffer is owned by the
// stage and reused across frames; on a failed call the previous contents
// survive so the caller can keep presenting the last good frame.
type Stage struct {
	processor ports.FrameProcessor
	sink      ports.DebugSink
	logger    ports.Logger

	rgba   []byte
	frames int
	errors int
}

// New creates a new processing stage.
func New(processor ports.FrameProcessor, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		processor: processor,
		sink:      sink,
		logger:    logger.WithComponent("process"),
	}
}

// Execute processes one frame. The returned slice aliases the stage's
// internal buffer and is valid until the next Execute.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProcessInput) ([]byte, error) {
	if err := pipeline.ValidateDimensions(input.Width, input.Height); err != nil {
		s.errors++
		return nil, err
	}
	need := pipeline.PackedSize(input.Width, input.Height)
	if cap(s.rgba) < need {
		s.rgba = make([]byte, need)
	}
	s.rgba = s.rgba[:need]

	if err := s.process(input); err != nil {
		s.errors++
		s.logger.Warn("Frame processing failed, keeping previous output: %v", err)
		return nil, err
	}
	s.frames++

	if s.sink != nil && s.sink.Enabled() && (s.frames-1)%dumpEvery == 0 {
		if err := s.sink.SaveLumaPlane(s.frames, input.Width, input.Height, input.Data); err != nil {
			s.logger.Debug("Failed to save luma dump: %v", err)
		}
		if err := s.sink.SaveProcessedFrame(s.frames, input.Width, input.Height, s.rgba); err != nil {
			s.logger.Debug("Failed to save processed dump: %v", err)
		}
	}
	return s.rgba, nil
}

// process isolates the processor call so a panic inside it surfaces as an
// ordinary error instead of tearing down the render thread.
func (s *Stage) process(input pipeline.ProcessInput) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processor panic: %v", r)
		}
	}()
	return s.processor.Process(input.Data, input.Width, input.Height, input.Effect, s.rgba)
}

// Counters returns the number of frames processed and the number of failed
// attempts since the stage was created.
func (s *Stage) Counters() (frames, errors int) {
	return s.frames, s.errors
}

// Close releases the underlying processor.
func (s *Stage) Close() error {
	return s.processor.Close()
}

var _ pipeline.Stage[pipeline.ProcessInput, []byte] = (*Stage)(nil)
