// Package server implements the TCP front end of framekv.
//
// Each accepted connection gets its own goroutine and an append-only
// receive buffer. Raw bytes are fed to the RESP decoder until it
// reports that more bytes are needed; every complete frame is parsed
// as a command, executed against the shared backend, and the encoded
// reply is written back before the next frame is taken, so replies on
// one connection always match request order.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/framekv-go/internal/backend"
	"github.com/yndnr/framekv-go/internal/telemetry/metric"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadTimeout bounds reading the remainder of a started command
	// (slowloris protection).
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a reply.
	WriteTimeout time.Duration
	// IdleTimeout bounds the wait for the first byte of the next
	// command; connections idle longer are closed.
	IdleTimeout time.Duration
	// RateLimit is the maximum number of commands per second per
	// client IP. Zero disables rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:7379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    1000,
	}
}

// Server accepts connections and serves the command pipeline.
type Server struct {
	cfg      *Config
	backend  *backend.Backend
	metrics  *metric.Registry
	logger   *slog.Logger
	limiters *limiterRegistry

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a server over the given backend. A nil config, metrics
// registry, or logger falls back to defaults.
func New(cfg *Config, b *backend.Backend, metrics *metric.Registry, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if metrics == nil {
		metrics = metric.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}

	var limiters *limiterRegistry
	if cfg.RateLimit > 0 {
		limiters = newLimiterRegistry(cfg.RateLimit)
	}

	return &Server{
		cfg:      cfg,
		backend:  b,
		metrics:  metrics,
		logger:   logger,
		limiters: limiters,
	}
}

// Start binds the listen address and begins accepting connections in
// the background. It returns once the listener is bound, so Addr is
// valid after a successful Start.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.logger.Info("server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.logger.Error("accept loop error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown closes the listener and waits for in-flight connections
// to finish or the context to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(c)
		}()
	}
}
