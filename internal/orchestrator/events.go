package orchestrator

import (
	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// EventKind tags the four world events external observers receive.
type EventKind int

const (
	DeviceAdded EventKind = iota
	DeviceRemoved
	DeviceUpdated
	NeighborUpdated
)

func (k EventKind) String() string {
	switch k {
	case DeviceAdded:
		return "DeviceAdded"
	case DeviceRemoved:
		return "DeviceRemoved"
	case DeviceUpdated:
		return "DeviceUpdated"
	case NeighborUpdated:
		return "NeighborUpdated"
	default:
		return "Unknown"
	}
}

// Neighbor carries the computed relative geometry from Mac to Of,
// populated only on a NeighborUpdated event.
type Neighbor struct {
	Of        uci.MacAddress
	Distance  uint16
	Azimuth   int16
	Elevation int8
}

// Event is one world event posted to the broadcast channel. Which
// fields are meaningful depends on Kind: Mac is always set; Pose is
// meaningful for DeviceAdded/DeviceUpdated; Neighbor is meaningful only
// for NeighborUpdated. observer.FromEvent renders this as untagged JSON
// keyed off which fields are present, dropping Pose entirely for
// DeviceRemoved rather than encoding a zeroed position.
type Event struct {
	Kind     EventKind
	Mac      uci.MacAddress
	Pose     geometry.Pose
	Neighbor Neighbor
}
