// Package orchestrator wires the capture, processing, and rendering pieces
// together and exposes the host boundary the embedding application drives.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/user/camview/pkg/framechannel"
	"github.com/user/camview/pkg/pipeline"
	"github.com/user/camview/pkg/ports"
	"github.com/user/camview/pkg/stages/convert"
	"github.com/user/camview/pkg/stages/process"
	"github.com/user/camview/pkg/surface"
)

// Config holds the pipeline configuration fixed at initialization. Only the
// effect can change afterwards, through SetEffect.
type Config struct {
	Width    int
	Height   int
	Effect   ports.EffectMode
	EdgeLow  int
	EdgeHigh int
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if err := pipeline.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if c.EdgeLow < 0 || c.EdgeHigh < c.EdgeLow {
		return fmt.Errorf("edge thresholds must satisfy 0 <= low <= high, got %d/%d",
			c.EdgeLow, c.EdgeHigh)
	}
	return nil
}

// RunStats carries the session counters reported by Stats.
type RunStats struct {
	Width  int
	Height int
	Effect ports.EffectMode

	FramesReceived    uint64
	FramesOverwritten uint64
	FramesDropped     uint64
	FramesProcessed   int
	ProcessErrors     int
	FramesUploaded    int
	DrawCalls         uint64
	ConvertErrors     uint64
	EffectSwitches    uint64
	Degraded          bool
}

// Orchestrator runs the per-refresh pipeline. The producer methods
// (OnCameraFrame, OnCameraPlanes) and the consumer methods
// (OnSurfaceCreated, OnSurfaceResized, OnDrawFrame) may be called from two
// different threads; the frame channel is the only shared state between
// them. No method lets a failure escape to the host: errors are logged and
// the previous output survives.
type Orchestrator struct {
	cfg    Config
	logger ports.Logger
	gl     ports.GL

	converter *convert.Converter
	channel   *framechannel.Channel
	process   *process.Stage

	mu      sync.Mutex
	surface *surface.Surface

	effect         atomic.Int32
	drawCalls      atomic.Uint64
	convertErrors  atomic.Uint64
	effectSwitches atomic.Uint64
	released       atomic.Bool

	// consume is the draw-thread scratch buffer the channel copies into.
	consume []byte
}

// New initializes the pipeline. Everything that can fail is allocated here
// so the host gets a definitive yes or no before frames start flowing.
func New(cfg Config, processor ports.FrameProcessor, gl ports.GL, sink ports.DebugSink, log ports.Logger) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	converter, err := convert.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	channel, err := framechannel.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	o := &Orchestrator{
		cfg:       cfg,
		logger:    log.WithComponent("pipeline"),
		gl:        gl,
		converter: converter,
		channel:   channel,
		process:   process.New(processor, sink, log),
		consume:   make([]byte, channel.Capacity()),
	}
	o.effect.Store(int32(cfg.Effect))
	o.logger.Info("Pipeline initialized: %dx%d, effect %s", cfg.Width, cfg.Height, cfg.Effect)
	return o, nil
}

// OnSurfaceCreated builds the GPU surface against the now-current GL
// context. Called again after a context loss it drops the old surface and
// starts fresh; the frame channel and its everReceived state are untouched.
func (o *Orchestrator) OnSurfaceCreated() {
	defer o.recoverBoundary("OnSurfaceCreated")
	if o.released.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.surface != nil {
		o.surface.Release()
	}
	s, err := surface.New(o.gl, o.logger, o.cfg.Width, o.cfg.Height)
	if err != nil {
		o.logger.Error("Failed to initialize window: %s", err.Error())
		return
	}
	o.surface = s
	o.logger.Info("Surface created")
}

// OnSurfaceResized updates the viewport. A call before OnSurfaceCreated is
// ignored.
func (o *Orchestrator) OnSurfaceResized(width, height int) {
	defer o.recoverBoundary("OnSurfaceResized")
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.surface == nil || o.released.Load() {
		return
	}
	o.surface.Resize(width, height)
}

// OnDrawFrame runs one refresh: poll the channel, process and upload a
// fresh frame if there is one, then draw. Processing failures keep the
// previous texture; the draw always happens.
func (o *Orchestrator) OnDrawFrame() {
	defer o.recoverBoundary("OnDrawFrame")
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.surface == nil || o.released.Load() {
		return
	}
	o.drawCalls.Add(1)

	if o.channel.ConsumeLatest(o.consume) {
		rgba, err := o.process.Execute(context.Background(), pipeline.ProcessInput{
			Data:   o.consume,
			Width:  o.cfg.Width,
			Height: o.cfg.Height,
			Effect: o.Effect(),
		})
		if err == nil {
			if err := o.surface.UploadFrame(rgba); err != nil {
				o.logger.Warn("Frame upload failed, keeping previous output: %v", err)
			}
		}
	} else if !o.channel.EverReceived() {
		o.logger.Debug("Draw skipped: no frame received yet")
	}
	o.surface.Draw()
}

// OnCameraFrame ingests one already-packed NV21 frame from the producer
// thread. Frames with unexpected dimensions or length are logged and
// dropped; the channel keeps its previous contents.
func (o *Orchestrator) OnCameraFrame(nv21 []byte, width, height int) {
	defer o.recoverBoundary("OnCameraFrame")
	if o.released.Load() {
		return
	}
	if width != o.cfg.Width || height != o.cfg.Height {
		o.convertErrors.Add(1)
		o.logger.Warn("Frame dropped: unexpected dimensions %dx%d", width, height)
		return
	}
	if len(nv21) != pipeline.SemiPlanarSize(width, height) {
		o.convertErrors.Add(1)
		o.logger.Warn("Frame dropped: unexpected length %d", len(nv21))
		return
	}
	o.channel.Publish(nv21)
}

// OnCameraPlanes ingests one planar frame, converting it to NV21 before
// publication. The planes are only read for the duration of the call.
func (o *Orchestrator) OnCameraPlanes(frame ports.RawFrame) {
	defer o.recoverBoundary("OnCameraPlanes")
	if o.released.Load() {
		return
	}
	nv21, err := o.converter.Convert(frame)
	if err != nil {
		o.convertErrors.Add(1)
		o.logger.Warn("Frame conversion failed, dropping frame: %v", err)
		return
	}
	o.channel.Publish(nv21)
}

// SetEffect switches the active effect for subsequent frames. Safe to call
// from any thread.
func (o *Orchestrator) SetEffect(effect ports.EffectMode) {
	if effect < ports.EffectPassthrough || effect > ports.EffectEdgeDetect {
		effect = ports.EffectPassthrough
	}
	if ports.EffectMode(o.effect.Swap(int32(effect))) != effect {
		o.effectSwitches.Add(1)
		o.logger.Info("Effect switched to %s", effect)
	}
}

// Effect returns the currently active effect.
func (o *Orchestrator) Effect() ports.EffectMode {
	return ports.EffectMode(o.effect.Load())
}

// Release tears the pipeline down. Idempotent; all boundary methods become
// no-ops afterwards.
func (o *Orchestrator) Release() {
	defer o.recoverBoundary("Release")
	if o.released.Swap(true) {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.surface != nil {
		o.surface.Release()
		o.surface = nil
	}
	if err := o.process.Close(); err != nil {
		o.logger.Warn("Failed to close processor: %v", err)
	}
	o.logger.Info("Pipeline released")
}

// Stats returns a snapshot of the session counters.
func (o *Orchestrator) Stats() RunStats {
	published, overwritten, dropped := o.channel.Counters()

	stats := RunStats{
		Width:             o.cfg.Width,
		Height:            o.cfg.Height,
		Effect:            o.Effect(),
		FramesReceived:    published,
		FramesOverwritten: overwritten,
		FramesDropped:     dropped,
		DrawCalls:         o.drawCalls.Load(),
		ConvertErrors:     o.convertErrors.Load(),
		EffectSwitches:    o.effectSwitches.Load(),
	}
	// The process stage counters are only written under mu by OnDrawFrame.
	o.mu.Lock()
	stats.FramesProcessed, stats.ProcessErrors = o.process.Counters()
	if o.surface != nil {
		stats.FramesUploaded = o.surface.UploadCount()
		stats.Degraded = o.surface.Degraded()
	}
	o.mu.Unlock()
	return stats
}

// recoverBoundary converts a panic inside a host-boundary method into a log
// line. The host must never see a crash from the pipeline.
func (o *Orchestrator) recoverBoundary(method string) {
	if r := recover(); r != nil {
		o.logger.Error("Pipeline error in %s: %v", method, r)
	}
}
