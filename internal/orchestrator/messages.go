package orchestrator

import (
	"github.com/iamruinous/pica-emulator/internal/device"
	"github.com/iamruinous/pica-emulator/internal/world"
	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// Status is the reply payload for every control-plane request.
type Status struct {
	OK    bool
	Error string
}

func ok() Status { return Status{OK: true} }

func failed(err error) Status { return Status{OK: false, Error: err.Error()} }

// Inbox message variants. The orchestrator's Run loop type-switches on
// these; every variant that expects an answer carries its own
// single-shot reply channel rather than sharing one, so a slow
// subscriber on one request can never stall another.

// ConnectMsg is posted by internal/server when a socket is accepted.
type ConnectMsg struct {
	Reply chan *device.Device
}

// DisconnectMsg is posted by internal/connection exactly once per
// connection task, regardless of why the task terminated.
type DisconnectMsg struct {
	Handle uint64
}

// RangingMsg is posted by a session's ranging scheduler on each tick.
type RangingMsg struct {
	Handle    uint64
	SessionID uint32
}

// CommandMsg is posted by internal/connection for every successfully
// parsed inbound UCI command.
type CommandMsg struct {
	Handle  uint64
	Command uci.Command
}

// SetPoseMsg repositions an existing device or anchor by MAC.
type SetPoseMsg struct {
	Mac   uci.MacAddress
	Pose  geometry.Pose
	Reply chan Status
}

// CreateAnchorMsg inserts a new anchor.
type CreateAnchorMsg struct {
	Mac   uci.MacAddress
	Pose  geometry.Pose
	Reply chan Status
}

// DestroyAnchorMsg removes an anchor by MAC.
type DestroyAnchorMsg struct {
	Mac   uci.MacAddress
	Reply chan Status
}

// InitUciDeviceMsg seeds the pose of an already-connected device,
// addressed by its current MAC; a control-plane convenience alias for
// SetPoseMsg restricted to devices, kept as its own message because
// the inbox contract names it separately.
type InitUciDeviceMsg struct {
	Mac   uci.MacAddress
	Pose  geometry.Pose
	Reply chan Status
}

// GetStateMsg requests an immutable snapshot of the world.
type GetStateMsg struct {
	Reply chan []world.Entity
}

// SubscribeMsg registers a new lossy observer channel; registration is
// itself routed through the inbox so the subscriber list is never
// touched outside the orchestrator goroutine.
type SubscribeMsg struct {
	Reply chan (<-chan Event)
}
