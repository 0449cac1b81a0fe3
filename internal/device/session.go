package device

import (
	"context"

	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// defaultRangingIntervalMs is used when a session reaches Idle without
// ever having received an explicit ranging-interval app config value.
const defaultRangingIntervalMs = 200

// Session is a single device's ranging context, identified by a 32-bit
// id unique within that device (not process-wide).
type Session struct {
	ID             uint32
	Type           uci.SessionType
	State          uci.SessionState
	SequenceNumber uint32
	AppConfig      map[uci.AppConfigID][]byte

	cancelRanging context.CancelFunc
}

func newSession(id uint32, sessionType uci.SessionType) *Session {
	return &Session{
		ID:        id,
		Type:      sessionType,
		State:     uci.SessionStateInit,
		AppConfig: make(map[uci.AppConfigID][]byte),
	}
}

// SetAppConfig applies the given params and transitions Init -> Idle.
// An Active session rejects the call without transitioning, per the
// session state machine.
func (s *Session) SetAppConfig(params []uci.AppConfigParam) uci.StatusCode {
	if s.State == uci.SessionStateActive {
		return uci.StatusSessionActive
	}
	for _, p := range params {
		s.AppConfig[p.ID] = p.Value
	}
	if s.State == uci.SessionStateInit {
		s.State = uci.SessionStateIdle
	}
	return uci.StatusOK
}

// AppConfigValues returns the current value for every requested id,
// omitting ids this session has no stored value for; callers that want
// a permissive "OK with empty list" reply for unknown ids build that
// from the returned (possibly shorter) slice themselves.
func (s *Session) AppConfigValues(ids []uci.AppConfigID) []uci.AppConfigParam {
	out := make([]uci.AppConfigParam, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.AppConfig[id]; ok {
			out = append(out, uci.AppConfigParam{ID: id, Value: v})
		}
	}
	return out
}

// DestinationMacs decodes the session's configured ranging destination
// list, or nil if none has been set.
func (s *Session) DestinationMacs() []uci.MacAddress {
	raw, ok := s.AppConfig[uci.AppConfigDstMacAddressList]
	if !ok {
		return nil
	}
	macs, err := uci.DecodeDstMacAddressList(raw)
	if err != nil {
		return nil
	}
	return macs
}

// AddressMode decodes the session's configured MAC addressing mode,
// defaulting to Short when unset. RANGE_START on an Extended-mode
// session is rejected with StatusNotImplemented rather than attempting
// to range with an address form this emulator never defined.
func (s *Session) AddressMode() uci.AddressMode {
	raw, ok := s.AppConfig[uci.AppConfigMacAddressMode]
	if !ok || len(raw) < 1 {
		return uci.AddressModeShort
	}
	return uci.AddressMode(raw[0])
}

// RangingIntervalMs decodes the session's configured ranging interval,
// falling back to defaultRangingIntervalMs if unset or malformed.
func (s *Session) RangingIntervalMs() uint32 {
	raw, ok := s.AppConfig[uci.AppConfigRangingInterval]
	if !ok {
		return defaultRangingIntervalMs
	}
	ms, err := uci.DecodeRangingInterval(raw)
	if err != nil || ms == 0 {
		return defaultRangingIntervalMs
	}
	return ms
}

// Start transitions Idle -> Active. The caller spawns the ranging task
// only after Start returns StatusOK, then hands its cancel func to
// SetRangingCancel.
func (s *Session) Start() uci.StatusCode {
	switch s.State {
	case uci.SessionStateInit:
		return uci.StatusSessionNotConfigured
	case uci.SessionStateActive:
		return uci.StatusSessionActive
	case uci.SessionStateIdle:
		s.State = uci.SessionStateActive
		return uci.StatusOK
	default:
		return uci.StatusRejected
	}
}

// SetRangingCancel records the cancel func for the ranging task spawned
// after a successful Start.
func (s *Session) SetRangingCancel(cancel context.CancelFunc) {
	s.cancelRanging = cancel
}

// Stop transitions Active -> Idle and cancels the ranging task. It is
// idempotent: stopping a non-Active session is a no-op success, so
// RANGE_STOP can always be retried safely.
func (s *Session) Stop() uci.StatusCode {
	if s.State != uci.SessionStateActive {
		return uci.StatusOK
	}
	s.State = uci.SessionStateIdle
	if s.cancelRanging != nil {
		s.cancelRanging()
		s.cancelRanging = nil
	}
	return uci.StatusOK
}

// cancel tears down any pending ranging task without touching session
// state; used when the owning device is being torn down wholesale.
func (s *Session) cancel() {
	if s.cancelRanging != nil {
		s.cancelRanging()
		s.cancelRanging = nil
	}
}

// NextSequenceNumber returns the sequence number to stamp on the next
// range-data notification and advances the counter, wrapping on
// overflow.
func (s *Session) NextSequenceNumber() uint32 {
	n := s.SequenceNumber
	s.SequenceNumber++
	return n
}
