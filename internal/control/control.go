// Package control serves the HTTP/WebSocket observer and control plane:
// a GET /events upgrade streaming PicaEvent JSON, and a POST /command
// endpoint mapping a small JSON command set onto orchestrator inbox
// messages.
package control

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/config"
	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

// Control owns the HTTP server backing the control/observer plane.
type Control struct {
	cfg  config.ListenConfig
	orch *orchestrator.Orchestrator
	log  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	srv      *http.Server
	running  bool
	wg       sync.WaitGroup
}

// New creates a Control plane bound to the given orchestrator. Call
// Start to begin serving.
func New(cfg *config.Config, orch *orchestrator.Orchestrator, logger *zap.Logger) *Control {
	log := logger.With(zap.String("component", "control"))
	c := &Control{cfg: cfg.Listen, orch: orch, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/events", c.handleEvents)
	mux.HandleFunc("/command", c.handleCommand)
	mux.HandleFunc("/state", c.handleState)
	c.srv = &http.Server{Handler: mux}

	return c
}

// Start binds the HTTP listener and begins serving in a background
// goroutine, returning once the listener is bound so that a bind
// failure is reported synchronously.
func (c *Control) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("control plane already running")
	}

	addr := fmt.Sprintf(":%d", c.cfg.HTTPPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	c.listener = ln
	c.running = true
	c.mu.Unlock()

	c.log.Info("control plane listening", zap.String("addr", addr))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			c.log.Warn("control plane serve error", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return nil
}

// Stop shuts the HTTP server down. Safe to call more than once.
func (c *Control) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return nil
	}
	c.running = false
	return c.srv.Close()
}

// Wait blocks until the server has stopped serving.
func (c *Control) Wait() {
	c.wg.Wait()
}

// Addr returns the bound listener address, or nil before Start succeeds.
func (c *Control) Addr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listener == nil {
		return nil
	}
	return c.listener.Addr()
}
