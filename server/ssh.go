// Package server plays a reveal to every SSH client that connects
// Each session runs its own engine over the shared immutable grid
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"github.com/lixenwraith/glyph-reveal/engine"
	"github.com/lixenwraith/glyph-reveal/glyph"
	"github.com/lixenwraith/glyph-reveal/render"
	"github.com/lixenwraith/glyph-reveal/status"
)

// Options configures an SSHServer
type Options struct {
	Addr    string
	HostKey string // PEM private key path

	// Sink receives every session's transitions besides the log and Metrics
	Sink status.Sink

	// Metrics counts plays, frames and sessions across sessions; nil allocates one
	Metrics *status.Metrics
}

// SSHServer wraps the SSH listener and per-session playback
type SSHServer struct {
	grid    *glyph.Grid
	cfg     engine.Config
	sink    status.Sink
	metrics *status.Metrics
	srv     *ssh.Server
}

// NewSSHServer binds grid and cfg to a listener configuration
// cfg.Rand is ignored: sessions run concurrently and each draws from cfg.Seed
func NewSSHServer(grid *glyph.Grid, cfg engine.Config, opts Options) (*SSHServer, error) {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return nil, errors.New("server: empty grid")
	}
	if cfg.Duration <= 0 {
		return nil, engine.ErrInvalidDuration
	}
	cfg.Rand = nil

	s := &SSHServer{
		grid:    grid,
		cfg:     cfg,
		sink:    opts.Sink,
		metrics: opts.Metrics,
	}
	if s.metrics == nil {
		s.metrics = status.NewMetrics()
	}

	s.srv = &ssh.Server{
		Addr: opts.Addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}
	if err := s.srv.SetOption(ssh.HostKeyFile(opts.HostKey)); err != nil {
		return nil, fmt.Errorf("set host key: %w", err)
	}
	return s, nil
}

// Metrics returns the counters shared by all sessions
func (s *SSHServer) Metrics() *status.Metrics {
	return s.metrics
}

// ListenAndServe listens on the configured address and blocks
func (s *SSHServer) ListenAndServe() error {
	log.Printf("SSH server listening on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Serve accepts sessions on l and blocks
func (s *SSHServer) Serve(l net.Listener) error {
	log.Printf("SSH server listening on %s", l.Addr())
	return s.srv.Serve(l)
}

// Shutdown stops accepting and waits for sessions to end or ctx to expire
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Close stops the listener and drops every session
func (s *SSHServer) Close() error {
	return s.srv.Close()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		sess.Exit(1)
		return
	}

	username := sess.User()
	if username == "" {
		username = "anonymous"
	}

	s.metrics.Sessions.Add(1)
	log.Printf("session connected: %s (%s) %dx%d", username, sess.RemoteAddr(), ptyReq.Window.Width, ptyReq.Window.Height)
	defer func() {
		s.metrics.Sessions.Add(-1)
		log.Printf("session disconnected: %s", username)
	}()

	sink := status.Multi{s.metrics, status.LogSink{Prefix: username + ": "}}
	if s.sink != nil {
		sink = append(sink, s.sink)
	}

	e, err := engine.New(s.grid, s.cfg, sink, s.metrics)
	if err != nil {
		fmt.Fprintf(sess, "Error: %v\r\n", err)
		sess.Exit(1)
		return
	}

	// Viewport is fixed to the window size at connect
	surface := render.NewANSISurface(sess, ptyReq.Window.Width, ptyReq.Window.Height)
	if err := surface.Open(); err != nil {
		return
	}
	defer surface.Close()

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	events := make(chan engine.Event, 8)

	go func() {
		defer cancel()
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, ev := range parseInput(buf[:n]) {
				if ev.Type == engine.EventQuit {
					return
				}
				select {
				case events <- ev:
				default:
				}
			}
		}
	}()

	// Resizes are drained; the running reveal keeps its viewport
	go func() {
		for range winCh {
		}
	}()

	if err := e.Run(ctx, engine.NewTickerSource(s.cfg.FPS), events, surface); err != nil {
		log.Printf("session %s: %v", username, err)
	}
}

// parseInput converts raw terminal bytes into engine events
// q, Esc and Ctrl-C quit; r restarts; escape sequences are skipped
func parseInput(data []byte) []engine.Event {
	var events []engine.Event
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			// Esc alone quits; CSI sequences such as arrow keys are skipped
			if i+1 < len(data) && data[i+1] == '[' {
				i += 2
				for i < len(data) && (data[i] < 0x40 || data[i] > 0x7e) {
					i++
				}
				i++
				continue
			}
			events = append(events, engine.Quit)
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'q', 'Q', 3: // 3 = Ctrl-C
			events = append(events, engine.Quit)
		case 'r', 'R':
			events = append(events, engine.Restart)
		}
		i += size
	}
	return events
}
