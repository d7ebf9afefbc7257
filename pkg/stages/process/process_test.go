package process

import (
	"context"
	"errors"
	"testing"

	"github.com/user/camview/pkg/adapters/logger"
	"github.com/user/camview/pkg/mocks"
	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
)

func input(width, height int, effect ports.EffectMode) pipeline.ProcessInput {
	return pipeline.ProcessInput{
		Data:   make([]byte, pipeline.SemiPlanarSize(width, height)),
		Width:  width,
		Height: height,
		Effect: effect,
	}
}

func TestExecute_DelegatesToProcessor(t *testing.T) {
	proc := &mocks.Processor{
		ProcessFunc: func(nv21 []byte, width, height int, effect ports.EffectMode, dst []byte) error {
			for i := range dst {
				dst[i] = 0x7F
			}
			return nil
		},
	}
	stage := New(proc, nil, logger.NewNoop())

	out, err := stage.Execute(context.Background(), input(4, 2, ports.EffectGrayscale))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != pipeline.PackedSize(4, 2) {
		t.Errorf("output length: expected %d, got %d", pipeline.PackedSize(4, 2), len(out))
	}
	if out[0] != 0x7F {
		t.Error("expected processor output in the returned buffer")
	}
	if len(proc.Calls) != 1 || proc.Calls[0] != ports.EffectGrayscale {
		t.Errorf("expected one grayscale call, got %v", proc.Calls)
	}
}

func TestExecute_FailureKeepsPreviousOutput(t *testing.T) {
	fail := false
	proc := &mocks.Processor{
		ProcessFunc: func(nv21 []byte, width, height int, effect ports.EffectMode, dst []byte) error {
			if fail {
				return errors.New("conversion failed")
			}
			for i := range dst {
				dst[i] = 0x11
			}
			return nil
		},
	}
	stage := New(proc, nil, logger.NewNoop())

	first, err := stage.Execute(context.Background(), input(4, 2, ports.EffectPassthrough))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail = true
	if _, err := stage.Execute(context.Background(), input(4, 2, ports.EffectPassthrough)); err == nil {
		t.Fatal("expected error from failing processor")
	}
	// The buffer from the successful call is untouched.
	if first[0] != 0x11 {
		t.Error("previous output corrupted by failed call")
	}

	frames, errs := stage.Counters()
	if frames != 1 || errs != 1 {
		t.Errorf("counters: expected 1 frame / 1 error, got %d/%d", frames, errs)
	}
}

func TestExecute_RecoversFromPanic(t *testing.T) {
	proc := &mocks.Processor{
		ProcessFunc: func(nv21 []byte, width, height int, effect ports.EffectMode, dst []byte) error {
			panic("index out of range")
		},
	}
	stage := New(proc, nil, logger.NewNoop())

	_, err := stage.Execute(context.Background(), input(4, 2, ports.EffectEdgeDetect))
	if err == nil {
		t.Fatal("expected panic to surface as error")
	}
}

func TestExecute_RejectsBadDimensions(t *testing.T) {
	stage := New(&mocks.Processor{}, nil, logger.NewNoop())
	in := input(4, 2, ports.EffectPassthrough)
	in.Width = 3
	if _, err := stage.Execute(context.Background(), in); err == nil {
		t.Error("expected error for odd width")
	}
}

func TestExecute_DebugDumpsThrottled(t *testing.T) {
	sink := &mocks.Sink{EnabledValue: true}
	stage := New(&mocks.Processor{}, sink, logger.NewNoop())

	// The first frame dumps; the next interval's worth must not. The frame
	// after a full interval dumps again.
	for i := 0; i < dumpEvery+1; i++ {
		if _, err := stage.Execute(context.Background(), input(4, 2, ports.EffectPassthrough)); err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
	}
	if len(sink.LumaPlanes) != 2 || len(sink.ProcessedFrames) != 2 {
		t.Errorf("expected 2 dumps of each kind, got %d/%d",
			len(sink.LumaPlanes), len(sink.ProcessedFrames))
	}
}

func TestExecute_DisabledSinkSkipsDumps(t *testing.T) {
	sink := &mocks.Sink{EnabledValue: false}
	stage := New(&mocks.Processor{}, sink, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), input(4, 2, ports.EffectPassthrough)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.LumaPlanes) != 0 {
		t.Error("disabled sink must not receive dumps")
	}
}

func TestClose_ClosesProcessor(t *testing.T) {
	closed := false
	proc := &mocks.Processor{CloseFunc: func() error { closed = true; return nil }}
	stage := New(proc, nil, logger.NewNoop())
	if err := stage.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closed {
		t.Error("expected underlying processor to be closed")
	}
}
