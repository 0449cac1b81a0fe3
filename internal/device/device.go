package device

import (
	"sort"

	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// MaxSessionsPerDevice bounds the number of concurrently live sessions
// a single device may hold; the 256th SESSION_INIT is rejected.
const MaxSessionsPerDevice = 255

// OutboundQueueCapacity bounds each device's outbound packet channel.
const OutboundQueueCapacity = 255

// Device is one emulated UCI controller, owned exclusively by the
// orchestrator for the lifetime of its TCP connection.
type Device struct {
	Handle      uint64
	MacAddress  uci.MacAddress
	Pose        geometry.Pose
	State       uci.DeviceState
	Config      map[uci.ConfigID][]byte
	CountryCode [2]byte
	Outbound    chan []byte

	sessions map[uint32]*Session
}

// New creates a device in its post-connect Ready state with a default
// MAC derived from its handle (its MAC, and the key for MAC lookups,
// until INIT_DEVICE assigns another) and a zero pose.
func New(handle uint64) *Device {
	return &Device{
		Handle:     handle,
		MacAddress: uci.ShortFromHandle(handle),
		Pose:       geometry.Pose{Quat: geometry.Identity},
		State:      uci.DeviceStateReady,
		Config:     make(map[uci.ConfigID][]byte),
		Outbound:   make(chan []byte, OutboundQueueCapacity),
		sessions:   make(map[uint32]*Session),
	}
}

// Enqueue attempts a non-blocking send to the device's outbound queue.
// It reports false if the queue was full, in which case the caller
// must log and drop rather than back-pressure the orchestrator.
func (d *Device) Enqueue(pdu []byte) bool {
	select {
	case d.Outbound <- pdu:
		return true
	default:
		return false
	}
}

// Session looks up a session by id.
func (d *Device) Session(id uint32) (*Session, bool) {
	s, ok := d.sessions[id]
	return s, ok
}

// CreateSession creates and stores a new Init-state session, enforcing
// MaxSessionsPerDevice and duplicate-id rejection.
func (d *Device) CreateSession(id uint32, sessionType uci.SessionType) (*Session, uci.StatusCode) {
	if _, exists := d.sessions[id]; exists {
		return nil, uci.StatusSessionDuplicate
	}
	if len(d.sessions) >= MaxSessionsPerDevice {
		return nil, uci.StatusMaxSessionsExceeded
	}
	s := newSession(id, sessionType)
	d.sessions[id] = s
	return s, uci.StatusOK
}

// DeinitSession removes a session, cancelling any ranging task it
// holds first. A session may be destroyed only once its ranging task
// has acknowledged cancellation, which cancel() arranges for
// synchronously since the task only ever observes cancellation, it
// does not need to report back.
func (d *Device) DeinitSession(id uint32) uci.StatusCode {
	s, ok := d.sessions[id]
	if !ok {
		return uci.StatusSessionNotExist
	}
	s.cancel()
	delete(d.sessions, id)
	d.recomputeState()
	return uci.StatusOK
}

// CancelAllSessions cancels every ranging task this device owns,
// without removing the sessions. Used when the device disconnects and
// the orchestrator is about to drop the whole Device value anyway.
func (d *Device) CancelAllSessions() {
	for _, s := range d.sessions {
		s.cancel()
	}
}

// SessionCount reports the number of live sessions.
func (d *Device) SessionCount() int {
	return len(d.sessions)
}

// SessionIDs returns every live session id, sorted for deterministic
// iteration (GET_CAPS_INFO-style responses and tests benefit from
// stable ordering).
func (d *Device) SessionIDs() []uint32 {
	ids := make([]uint32, 0, len(d.sessions))
	for id := range d.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RecomputeState refreshes Ready/Active from the live session set; it
// must be called after any session state transition that could flip
// the device between "no active sessions" and "at least one active".
func (d *Device) RecomputeState() {
	d.recomputeState()
}

func (d *Device) recomputeState() {
	for _, s := range d.sessions {
		if s.State == uci.SessionStateActive {
			d.State = uci.DeviceStateActive
			return
		}
	}
	d.State = uci.DeviceStateReady
}
