package world

import (
	"errors"

	"github.com/iamruinous/pica-emulator/internal/device"
	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// MaxDevices bounds concurrently connected devices.
const MaxDevices = 8

// ErrMaxDevicesExceeded is returned by NewDevice once MaxDevices
// devices are already live.
var ErrMaxDevicesExceeded = errors.New("world: max devices exceeded")

// ErrMacCollision is returned when a mutation would give a device and
// an anchor the same MAC address; devices and anchors share one
// address space but must remain disjoint sets.
var ErrMacCollision = errors.New("world: mac address already in use")

// Anchor is a passive peer with a position but no connection.
type Anchor struct {
	MacAddress uci.MacAddress
	Pose       geometry.Pose
}

// Category tags what kind of entity a MAC address names, as reported
// to observers alongside geometry events.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryDevice
	CategoryAnchor
)

// World is the orchestrator's private state: every live device and
// anchor, plus the handle counter used to mint new device handles. It
// is never accessed outside the orchestrator goroutine.
type World struct {
	devices    map[uint64]*device.Device
	anchors    map[uci.MacAddress]*Anchor
	nextHandle uint64
}

// New returns an empty world.
func New() *World {
	return &World{
		devices: make(map[uint64]*device.Device),
		anchors: make(map[uci.MacAddress]*Anchor),
	}
}

// NewDevice allocates a fresh handle and a Device for it, enforcing
// MaxDevices. The returned device already has a default MAC and a zero
// pose; callers wanting to override the MAC must re-check for
// collisions, since the default handle-derived MAC is Short-addressed
// and technically could collide with a client-chosen anchor MAC.
func (w *World) NewDevice() (*device.Device, error) {
	if len(w.devices) >= MaxDevices {
		return nil, ErrMaxDevicesExceeded
	}
	handle := w.nextHandle
	w.nextHandle++
	d := device.New(handle)
	w.devices[handle] = d
	return d, nil
}

// RemoveDevice deletes a device by handle, if present, cancelling its
// ranging tasks first.
func (w *World) RemoveDevice(handle uint64) (*device.Device, bool) {
	d, ok := w.devices[handle]
	if !ok {
		return nil, false
	}
	d.CancelAllSessions()
	delete(w.devices, handle)
	return d, true
}

// Device looks up a device by handle.
func (w *World) Device(handle uint64) (*device.Device, bool) {
	d, ok := w.devices[handle]
	return d, ok
}

// DeviceByMac finds a device by its current MAC address, used by
// InitUciDevice/SetPose control messages which address devices by MAC
// rather than by connection handle.
func (w *World) DeviceByMac(mac uci.MacAddress) (*device.Device, bool) {
	for _, d := range w.devices {
		if d.MacAddress == mac {
			return d, true
		}
	}
	return nil, false
}

// Devices returns every live device, in no particular order.
func (w *World) Devices() []*device.Device {
	out := make([]*device.Device, 0, len(w.devices))
	for _, d := range w.devices {
		out = append(out, d)
	}
	return out
}

// CreateAnchor inserts a new anchor, rejecting a MAC already held by a
// device or another anchor.
func (w *World) CreateAnchor(mac uci.MacAddress, pose geometry.Pose) error {
	if w.CategoryOf(mac) != CategoryUnknown {
		return ErrMacCollision
	}
	w.anchors[mac] = &Anchor{MacAddress: mac, Pose: pose}
	return nil
}

// DestroyAnchor removes an anchor by MAC.
func (w *World) DestroyAnchor(mac uci.MacAddress) bool {
	if _, ok := w.anchors[mac]; !ok {
		return false
	}
	delete(w.anchors, mac)
	return true
}

// Anchor looks up an anchor by MAC.
func (w *World) Anchor(mac uci.MacAddress) (*Anchor, bool) {
	a, ok := w.anchors[mac]
	return a, ok
}

// Anchors returns every live anchor, in no particular order.
func (w *World) Anchors() []*Anchor {
	out := make([]*Anchor, 0, len(w.anchors))
	for _, a := range w.anchors {
		out = append(out, a)
	}
	return out
}

// CategoryOf reports whether mac names a live device, a live anchor,
// or neither. It is the single lookup geometry fan-out uses to decide
// whether a destination MAC resolves to anything at all.
func (w *World) CategoryOf(mac uci.MacAddress) Category {
	if _, ok := w.anchors[mac]; ok {
		return CategoryAnchor
	}
	if _, ok := w.DeviceByMac(mac); ok {
		return CategoryDevice
	}
	return CategoryUnknown
}

// PoseOf returns the pose of whatever entity mac names, if any.
func (w *World) PoseOf(mac uci.MacAddress) (geometry.Pose, bool) {
	if a, ok := w.anchors[mac]; ok {
		return a.Pose, true
	}
	if d, ok := w.DeviceByMac(mac); ok {
		return d.Pose, true
	}
	return geometry.Pose{}, false
}

// Entity is one row of a GetState snapshot.
type Entity struct {
	MacAddress uci.MacAddress
	Pose       geometry.Pose
	Category   Category
	Handle     uint64 // only meaningful when Category == CategoryDevice
}

// Snapshot returns an immutable point-in-time view of every live
// device and anchor, tagged by category, for external GetState
// requests. Callers never see the live maps.
func (w *World) Snapshot() []Entity {
	out := make([]Entity, 0, len(w.devices)+len(w.anchors))
	for _, d := range w.devices {
		out = append(out, Entity{MacAddress: d.MacAddress, Pose: d.Pose, Category: CategoryDevice, Handle: d.Handle})
	}
	for _, a := range w.anchors {
		out = append(out, Entity{MacAddress: a.MacAddress, Pose: a.Pose, Category: CategoryAnchor})
	}
	return out
}

// OtherEntities returns every live device/anchor except the one named
// by mac, for neighbor-update fan-out.
func (w *World) OtherEntities(mac uci.MacAddress) []Entity {
	all := w.Snapshot()
	out := all[:0]
	for _, e := range all {
		if e.MacAddress != mac {
			out = append(out, e)
		}
	}
	return out
}
