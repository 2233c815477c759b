package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyph-reveal/audio"
	"github.com/lixenwraith/glyph-reveal/config"
	"github.com/lixenwraith/glyph-reveal/engine"
	"github.com/lixenwraith/glyph-reveal/geometry"
	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/render"
	"github.com/lixenwraith/glyph-reveal/status"
)

func main() {
	fs := flag.CommandLine
	flags := config.RegisterFlags(fs)
	debugLog := fs.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
	snapshot := fs.String("snapshot", "", "render the fully revealed frame to this PNG and exit")
	fs.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	if f := setupLogging(*debugLog); f != nil {
		defer f.Close()
	}

	cfg, err := flags.Resolve(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), *snapshot); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: glyph-reveal [options] <image>")
	fmt.Fprintln(os.Stderr, "\nSupported formats: PNG, JPEG, GIF, BMP, WebP")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nControls:")
	fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C    Quit")
	fmt.Fprintln(os.Stderr, "  r                 Restart the reveal")
}

// run converts the image then plays it on the terminal, or renders a snapshot
func run(ctx context.Context, cfg *config.Config, path, snapshot string) error {
	opts, err := cfg.ConvertOptions()
	if err != nil {
		return err
	}
	ecfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	metrics := status.NewMetrics()
	sink := status.Multi{status.LogSink{}, metrics}

	conv, err := glyph.NewConverter(opts, geometry.NewCache())
	if err != nil {
		return err
	}

	sink.Report(status.Converting())
	grid, err := conv.Convert(ctx, glyph.FileSource(path))
	if err != nil {
		sink.Report(status.Error(err.Error()))
		return err
	}

	if snapshot != "" {
		if err := runSnapshot(grid, ecfg, cfg.EngineDisplay(), sink, metrics, snapshot); err != nil {
			sink.Report(status.Error(err.Error()))
			return err
		}
		return nil
	}

	player := audio.NewPlayer(cfg.AudioConfig())
	if err := player.Initialize(); err != nil {
		log.Printf("audio initialization failed: %v (continuing without audio)", err)
	}
	defer player.Cleanup()

	return runTerminal(ctx, grid, ecfg, append(sink, player), metrics)
}

// runSnapshot renders the fully revealed grid on a raster surface and writes it as PNG
func runSnapshot(grid *glyph.Grid, ecfg engine.Config, display engine.Display, sink status.Sink, metrics *status.Metrics, path string) error {
	e, err := engine.New(grid, ecfg, sink, metrics)
	if err != nil {
		return err
	}

	opts := render.DefaultRasterOptions()
	opts.Display = display
	surface, err := render.NewRasterSurface(grid.Width, grid.Height, opts)
	if err != nil {
		return err
	}
	defer surface.Close()

	if err := e.Start(); err != nil {
		return err
	}
	if err := e.Prepare(surface); err != nil {
		return err
	}
	e.Finish()
	if err := e.RenderFrame(surface); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := surface.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	v := surface.Viewport()
	log.Printf("snapshot %s: %dx%d glyphs, %dx%d px", path, v.Cols, v.Rows, v.PixelW, v.PixelH)
	return nil
}

// runTerminal plays the reveal on the controlling terminal until quit
func runTerminal(ctx context.Context, grid *glyph.Grid, ecfg engine.Config, sink status.Sink, metrics *status.Metrics) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	setCrashScreen(screen)
	defer func() {
		if r := recover(); r != nil {
			handleCrash(r)
		}
		if takeCrashScreen() != nil {
			screen.Fini()
		}
	}()

	screen.SetStyle(tcell.StyleDefault.Background(render.Background))
	screen.HideCursor()
	screen.Clear()

	e, err := engine.New(grid, ecfg, sink, metrics)
	if err != nil {
		return err
	}

	events := make(chan engine.Event, 8)
	goSafe(func() { pollEvents(screen, events) })

	err = e.Run(ctx, engine.NewTickerSource(ecfg.FPS), events, render.NewTerminalSurface(screen))
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Printf("playback ended: %s, %d frames, %d restarts", metrics.Last(), metrics.Frames.Load(), metrics.Restarts.Load())
	return err
}
