package tui

import (
	"testing"

	"github.com/iamruinous/pica-emulator/internal/orchestrator"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

func TestAddEventTrimsToMaxEvents(t *testing.T) {
	m := New(nil)
	for i := 0; i < MaxEvents+10; i++ {
		m.addEvent(orchestrator.Event{Kind: orchestrator.DeviceAdded, Mac: uci.NewShortMac(0, byte(i))})
	}
	if len(m.events) != MaxEvents {
		t.Fatalf("expected %d events retained, got %d", MaxEvents, len(m.events))
	}
}

func TestAddEventCapturesNeighborOnlyForNeighborUpdated(t *testing.T) {
	m := New(nil)
	m.addEvent(orchestrator.Event{Kind: orchestrator.DeviceAdded, Mac: uci.NewShortMac(1, 1)})
	if m.events[0].Neighbor != "" {
		t.Errorf("expected no neighbor on a DeviceAdded event, got %q", m.events[0].Neighbor)
	}

	m.addEvent(orchestrator.Event{
		Kind:     orchestrator.NeighborUpdated,
		Mac:      uci.NewShortMac(1, 1),
		Neighbor: orchestrator.Neighbor{Of: uci.NewShortMac(2, 2)},
	})
	if m.events[1].Neighbor == "" {
		t.Error("expected a neighbor mac on a NeighborUpdated event")
	}
}
