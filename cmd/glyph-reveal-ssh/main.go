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
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/lixenwraith/glyph-reveal/config"
	"github.com/lixenwraith/glyph-reveal/geometry"
	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/server"
	"github.com/lixenwraith/glyph-reveal/status"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	fs := flag.CommandLine
	flags := config.RegisterFlags(fs)
	flags.RegisterServerFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glyph-reveal-ssh [options] <image>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := flags.Resolve(fs)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}

	if err := server.EnsureHostKey(cfg.Server.HostKey); err != nil {
		log.Fatalf("host key: %v", err)
	}

	opts, err := cfg.ConvertOptions()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ecfg, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	conv, err := glyph.NewConverter(opts, geometry.NewCache())
	if err != nil {
		log.Fatalf("converter: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grid, err := conv.Convert(ctx, glyph.FileSource(flag.Arg(0)))
	if err != nil {
		log.Fatalf("convert: %v", err)
	}
	log.Printf("grid ready: %dx%d, %d distinct glyphs", grid.Width, grid.Height, len(grid.Runes()))

	metrics := status.NewMetrics()
	srv, err := server.NewSSHServer(grid, ecfg, server.Options{
		Addr:    cfg.Server.Addr,
		HostKey: cfg.Server.HostKey,
		Metrics: metrics,
	})
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Printf("shutting down, %d sessions attached", metrics.Sessions.Load())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
		}
	}()

	log.Printf("connect with: ssh -t -p <port> you@localhost (%s reveal, %s)", ecfg.Mode, ecfg.Duration)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Fatalf("SSH server error: %v", err)
	}
	log.Printf("served %d plays, %d frames", metrics.Plays.Load(), metrics.Frames.Load())
}
