package observer

import (
	"context"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/config"
	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

// Manager subscribes to the orchestrator's event broadcast and fans
// each event out to every enabled sink by holding a flat slice of
// destinations and looping Send over all of them per message.
type Manager struct {
	sinks []Sink
	log   *zap.Logger
}

// NewManager builds sinks from cfg, skipping any that fail to
// construct (logged, not fatal) so one bad sink never keeps the
// emulator from starting.
func NewManager(cfgs []config.ObserverConfig, log *zap.Logger) *Manager {
	log = log.With(zap.String("component", "observer"))
	m := &Manager{log: log}
	for _, cfg := range cfgs {
		if !cfg.Enabled {
			continue
		}
		sink, err := New(cfg)
		if err != nil {
			log.Warn("failed to create observer sink", zap.String("type", cfg.Type), zap.Error(err))
			continue
		}
		m.sinks = append(m.sinks, sink)
		log.Info("observer sink active", zap.String("name", sink.Name()))
	}
	return m
}

// Run subscribes to orch and delivers events to every sink until ctx
// is cancelled. Call in its own goroutine.
func (m *Manager) Run(ctx context.Context, orch *orchestrator.Orchestrator) {
	if len(m.sinks) == 0 {
		<-ctx.Done()
		return
	}

	reply := make(chan (<-chan orchestrator.Event), 1)
	orch.Inbox() <- orchestrator.SubscribeMsg{Reply: reply}
	events := <-reply

	defer func() {
		for _, s := range m.sinks {
			if err := s.Close(); err != nil {
				m.log.Warn("error closing observer sink", zap.String("name", s.Name()), zap.Error(err))
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events:
			pe := FromEvent(e)
			for _, s := range m.sinks {
				if err := s.Send(ctx, pe); err != nil {
					m.log.Warn("observer sink send failed", zap.String("name", s.Name()), zap.Error(err))
				}
			}
		}
	}
}
