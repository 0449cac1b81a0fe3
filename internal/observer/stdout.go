package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iamruinous/pica-emulator/internal/config"
)

// Stdout writes events to standard output as newline-delimited JSON.
type Stdout struct {
	enabled bool
}

// NewStdout creates a new stdout sink.
func NewStdout(cfg config.ObserverConfig) (*Stdout, error) {
	return &Stdout{enabled: cfg.Enabled}, nil
}

// Send writes an event to stdout.
func (s *Stdout) Send(_ context.Context, evt *PicaEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// Close closes the stdout sink (no-op).
func (s *Stdout) Close() error { return nil }

// Name returns the sink identifier.
func (s *Stdout) Name() string { return "stdout" }

// Enabled returns whether this sink is enabled.
func (s *Stdout) Enabled() bool { return s.enabled }
