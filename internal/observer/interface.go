// Package observer fans world events out to configured sinks: stdout,
// file, webhook, and MQTT.
package observer

import (
	"context"

	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

// Sink delivers one world event to an output destination.
type Sink interface {
	// Send forwards an event to the sink destination.
	Send(ctx context.Context, evt *PicaEvent) error

	// Close cleanly shuts down the sink and releases any resources.
	Close() error

	// Name returns a unique identifier for this sink.
	Name() string

	// Enabled returns true if this sink is enabled and should receive events.
	Enabled() bool
}

// Position is a device or anchor's location, flattened into PicaEvent
// for any event that carries one. DeviceRemoved does not, so it is
// embedded by pointer: a nil Position vanishes from the encoded object
// entirely rather than appearing as a null or a zeroed triple.
type Position struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	Z int16 `json:"z"`
}

// NeighborReading is the relative geometry of one ranging round,
// flattened into PicaEvent only for a NeighborUpdated event.
type NeighborReading struct {
	NeighborMac       string `json:"neighbor_mac"`
	NeighborDistance  uint16 `json:"neighbor_distance_mm"`
	NeighborAzimuth   int16  `json:"neighbor_azimuth_deg"`
	NeighborElevation int8   `json:"neighbor_elevation_deg"`
}

// PicaEvent is the wire shape sinks encode, derived from
// orchestrator.Event. It carries no discriminator field: a receiver
// tells DeviceRemoved (mac only) apart from an Add/Update (mac +
// Position) and a ranging update (mac + NeighborReading) purely by
// which fields the encoded object has.
type PicaEvent struct {
	Mac string `json:"mac"`
	*Position
	*NeighborReading
}

// FromEvent converts an orchestrator.Event into its sink wire shape.
func FromEvent(e orchestrator.Event) *PicaEvent {
	pe := &PicaEvent{Mac: e.Mac.String()}
	switch e.Kind {
	case orchestrator.DeviceAdded, orchestrator.DeviceUpdated:
		pe.Position = &Position{X: e.Pose.X, Y: e.Pose.Y, Z: e.Pose.Z}
	case orchestrator.NeighborUpdated:
		pe.NeighborReading = &NeighborReading{
			NeighborMac:       e.Neighbor.Of.String(),
			NeighborDistance:  e.Neighbor.Distance,
			NeighborAzimuth:   e.Neighbor.Azimuth,
			NeighborElevation: e.Neighbor.Elevation,
		}
	}
	return pe
}
