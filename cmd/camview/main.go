// Package main provides the CLI entry point for camview.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli/v2"

	"github.com/user/camview/pkg/adapters/cvprocessor"
	"github.com/user/camview/pkg/adapters/filesink"
	"github.com/user/camview/pkg/adapters/gles"
	"github.com/user/camview/pkg/adapters/logger"
	"github.com/user/camview/pkg/adapters/nativeprocessor"
	"github.com/user/camview/pkg/adapters/nullsink"
	"github.com/user/camview/pkg/adapters/osfilesystem"
	"github.com/user/camview/pkg/adapters/screencast"
	"github.com/user/camview/pkg/adapters/testpattern"
	"github.com/user/camview/pkg/camview"
	"github.com/user/camview/pkg/config"
	"github.com/user/camview/pkg/orchestrator"
	"github.com/user/camview/pkg/ports"
	"github.com/user/camview/pkg/summarizer"
)

var version = "dev"

func init() {
	// The GL context and the GLFW event loop must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:    "camview",
		Usage:   "Live frame pipeline preview: source, effects, GPU display",
		Version: version,
		Commands: []*cli.Command{
			previewCommand(),
			versionCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Open a preview window and run the pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: "frame width (even)"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: "frame height (even)"},
			&cli.IntFlag{Name: "fps", Usage: "source frame rate"},
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "frame source (testpattern, screencast)"},
			&cli.StringFlag{Name: "url", Usage: "page URL for the screencast source"},
			&cli.StringFlag{Name: "processor", Aliases: []string{"p"}, Usage: "frame processor (native, opencv)"},
			&cli.StringFlag{Name: "effect", Aliases: []string{"e"}, Usage: "initial effect (passthrough, grayscale, edges)"},
			&cli.IntFlag{Name: "edge-low", Usage: "lower edge threshold"},
			&cli.IntFlag{Name: "edge-high", Usage: "upper edge threshold"},
			&cli.IntFlag{Name: "duration", Aliases: []string{"t"}, Usage: "session duration in ms (0 = until closed)"},
			&cli.StringFlag{Name: "summary", Usage: "write a Markdown session summary to this path"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "save intermediate frames"},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: "directory for debug output"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "suppress all log output"},
		},
		Action: runPreview,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Printf("camview %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func runPreview(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	fs := osfilesystem.New()
	var sink ports.DebugSink
	if cfg.Debug {
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	pipe := cfg.Pipeline()
	processor, err := buildProcessor(cfg.Processor, pipe)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg, pipe, log)
	if err != nil {
		return err
	}

	glAdapter := gles.New()
	orch, err := orchestrator.New(pipe.ToOrchestratorConfig(), processor, glAdapter, sink, log)
	if err != nil {
		return err
	}

	if sink.Enabled() {
		if data, err := json.MarshalIndent(cfg, "", "  "); err == nil {
			if err := sink.SaveSessionJSON(data); err != nil {
				log.Debug("Failed to save session info: %v", err)
			}
		}
	}

	start := time.Now()
	if err := runWindow(c.Context, cfg, pipe, orch, source, glAdapter, log); err != nil {
		return err
	}
	elapsed := int(time.Since(start).Milliseconds())

	stats := orch.Stats()
	orch.Release()

	summary := buildSummary(cfg, stats, elapsed)
	fmt.Print(summarizer.NewTextFormatter().Format(summary))
	summaryPath := c.String("summary")
	if summaryPath == "" {
		summaryPath = cfg.SummaryPath
	}
	if summaryPath != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
		if err := writer.Write(summaryPath, summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info("Summary saved to %s", summaryPath)
	}
	return nil
}

// resolveConfig loads the config file if given and applies flag overrides.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("url") {
		cfg.URL = c.String("url")
	}
	if c.IsSet("processor") {
		cfg.Processor = c.String("processor")
	}
	if c.IsSet("effect") {
		cfg.Effect = c.String("effect")
	}
	if c.IsSet("edge-low") {
		cfg.EdgeLow = c.Int("edge-low")
	}
	if c.IsSet("edge-high") {
		cfg.EdgeHigh = c.Int("edge-high")
	}
	if c.IsSet("duration") {
		cfg.DurationMs = c.Int("duration")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func buildProcessor(name string, pipe camview.Config) (ports.FrameProcessor, error) {
	switch name {
	case "", "native":
		return nativeprocessor.New(pipe.ProcessorOptions()), nil
	case "opencv":
		return cvprocessor.New(pipe.ProcessorOptions()), nil
	default:
		return nil, fmt.Errorf("unknown processor %q (native, opencv)", name)
	}
}

func buildSource(cfg config.Config, pipe camview.Config, log ports.Logger) (ports.FrameSource, error) {
	switch cfg.Source {
	case "", "testpattern":
		return testpattern.New(pipe.Width, pipe.Height, pipe.FPS, log)
	case "screencast":
		return screencast.New(screencast.Options{
			URL:        cfg.URL,
			Width:      pipe.Width,
			Height:     pipe.Height,
			Quality:    cfg.Quality,
			ChromePath: cfg.ChromePath,
		}, log)
	default:
		return nil, fmt.Errorf("unknown source %q (testpattern, screencast)", cfg.Source)
	}
}

// runWindow opens the preview window and drives the pipeline until the
// window closes, the duration elapses, or the process is interrupted.
func runWindow(parent context.Context, cfg config.Config, pipe camview.Config, orch *orchestrator.Orchestrator, source ports.FrameSource, glAdapter *gles.GL, log ports.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(pipe.Width, pipe.Height, "camview", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := glAdapter.Init(); err != nil {
		return fmt.Errorf("load gl: %w", err)
	}

	orch.OnSurfaceCreated()
	fbWidth, fbHeight := window.GetFramebufferSize()
	orch.OnSurfaceResized(fbWidth, fbHeight)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		orch.OnSurfaceResized(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.Key1:
			orch.SetEffect(ports.EffectPassthrough)
		case glfw.Key2:
			orch.SetEffect(ports.EffectGrayscale)
		case glfw.Key3:
			orch.SetEffect(ports.EffectEdgeDetect)
		case glfw.KeyEscape, glfw.KeyQ:
			w.SetShouldClose(true)
		}
	})

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	if cfg.DurationMs > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, time.Duration(cfg.DurationMs)*time.Millisecond)
		defer cancelTimeout()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	frames, err := source.Start(ctx)
	if err != nil {
		log.Error("Failed to start frame source: %s", err.Error())
		return err
	}
	defer source.Stop()

	// Producer: forward source frames to the pipeline until the source
	// channel closes.
	go func() {
		for frame := range frames {
			orch.OnCameraPlanes(frame)
		}
	}()

	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			window.SetShouldClose(true)
		case <-sig:
			log.Info("Interrupted, shutting down...")
			window.SetShouldClose(true)
		default:
		}

		orch.OnDrawFrame()
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func buildSummary(cfg config.Config, stats orchestrator.RunStats, elapsedMs int) *summarizer.Summary {
	return summarizer.NewBuilder().
		WithSession(summarizer.SessionInfo{
			Source:    cfg.Source,
			Processor: cfg.Processor,
			Width:     stats.Width,
			Height:    stats.Height,
			Effect:    stats.Effect,
			Degraded:  stats.Degraded,
		}).
		WithFrames(summarizer.FrameInfo{
			Received:       stats.FramesReceived,
			Overwritten:    stats.FramesOverwritten,
			Dropped:        stats.FramesDropped,
			Rejected:       stats.ConvertErrors,
			Processed:      stats.FramesProcessed,
			Errors:         stats.ProcessErrors,
			Uploaded:       stats.FramesUploaded,
			DrawCalls:      stats.DrawCalls,
			EffectSwitches: stats.EffectSwitches,
		}).
		WithTiming(elapsedMs).
		Build()
}
