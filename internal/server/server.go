// Package server listens for UCI TCP clients and hands each accepted
// socket off to a connection.Task.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/capture"
	"github.com/iamruinous/pica-emulator/internal/config"
	"github.com/iamruinous/pica-emulator/internal/connection"
	"github.com/iamruinous/pica-emulator/internal/device"
	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

// Server accepts UCI TCP connections and spawns one connection.Task per
// socket, each drawing its own device handle from the orchestrator.
type Server struct {
	listenCfg  config.ListenConfig
	captureCfg config.CaptureConfig
	orch       *orchestrator.Orchestrator
	logger     *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	running  bool
	wg       sync.WaitGroup
}

// New creates a Server bound to the given orchestrator. Call Start to
// begin accepting connections.
func New(cfg *config.Config, orch *orchestrator.Orchestrator, logger *zap.Logger) *Server {
	return &Server{
		listenCfg:  cfg.Listen,
		captureCfg: cfg.Capture,
		orch:       orch,
		logger:     logger.With(zap.String("component", "server")),
	}
}

// Start binds the UCI TCP listener and begins accepting connections in
// a background goroutine. It returns once the listener is bound, so a
// bind failure is reported synchronously to the caller.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}

	addr := fmt.Sprintf(":%d", s.listenCfg.UCIPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.running = true
	s.mu.Unlock()

	s.logger.Info("UCI listener started", zap.String("addr", addr))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ctx)
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop closes the listener, unblocking the accept loop. Safe to call
// more than once.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	return s.listener.Close()
}

// Wait blocks until the accept loop has returned, e.g. after Stop.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Addr returns the bound listener address, or nil before Start succeeds.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			s.mu.Lock()
			running := s.running
			s.mu.Unlock()
			if !running {
				return
			}
			s.logger.Warn("accept error", zap.Error(err))
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	reply := make(chan *device.Device, 1)
	s.orch.Inbox() <- orchestrator.ConnectMsg{Reply: reply}
	d := <-reply
	if d == nil {
		s.logger.Warn("connection rejected, world is full", zap.String("remote", conn.RemoteAddr().String()))
		conn.Close()
		return
	}

	var capWriter *capture.Writer
	if s.captureCfg.Enabled {
		w, err := capture.Open(s.captureCfg.Dir, d.Handle)
		if err != nil {
			s.logger.Warn("failed to open capture file", zap.Uint64("handle", d.Handle), zap.Error(err))
		} else {
			capWriter = w
		}
	}

	task := connection.New(conn, d, s.orch.Inbox(), capWriter, s.logger)
	task.Run()
}
