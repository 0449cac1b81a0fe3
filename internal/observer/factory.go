package observer

import (
	"fmt"

	"github.com/iamruinous/pica-emulator/internal/config"
)

// New creates a Sink from the given configuration.
func New(cfg config.ObserverConfig) (Sink, error) {
	switch cfg.Type {
	case "stdout":
		return NewStdout(cfg)
	case "file":
		return NewFile(cfg)
	case "webhook":
		return NewWebhook(cfg)
	case "mqtt":
		return NewMQTT(cfg)
	default:
		return nil, fmt.Errorf("unknown observer type: %s", cfg.Type)
	}
}
