package device

import (
	"testing"

	"github.com/iamruinous/pica-emulator/pkg/uci"
)

func TestSessionLifecycle(t *testing.T) {
	s := newSession(0x1234, uci.SessionTypeFiraRanging)
	if s.State != uci.SessionStateInit {
		t.Fatalf("expected Init, got %v", s.State)
	}

	if status := s.SetAppConfig([]uci.AppConfigParam{
		{ID: uci.AppConfigDstMacAddressList, Value: uci.EncodeDstMacAddressList([]uci.MacAddress{uci.NewShortMac(0xAA, 0xBB)})},
		{ID: uci.AppConfigRangingInterval, Value: uci.EncodeRangingInterval(200)},
	}); status != uci.StatusOK {
		t.Fatalf("unexpected status: %v", status)
	}
	if s.State != uci.SessionStateIdle {
		t.Fatalf("expected Idle, got %v", s.State)
	}

	macs := s.DestinationMacs()
	if len(macs) != 1 || macs[0] != uci.NewShortMac(0xAA, 0xBB) {
		t.Errorf("unexpected destination macs: %v", macs)
	}
	if interval := s.RangingIntervalMs(); interval != 200 {
		t.Errorf("expected interval 200, got %d", interval)
	}

	if status := s.Start(); status != uci.StatusOK {
		t.Fatalf("unexpected start status: %v", status)
	}
	if s.State != uci.SessionStateActive {
		t.Fatalf("expected Active, got %v", s.State)
	}

	if status := s.Stop(); status != uci.StatusOK {
		t.Fatalf("unexpected stop status: %v", status)
	}
	if s.State != uci.SessionStateIdle {
		t.Fatalf("expected Idle after stop, got %v", s.State)
	}
}

func TestSessionStartBeforeConfigured(t *testing.T) {
	s := newSession(1, uci.SessionTypeFiraRanging)
	if status := s.Start(); status != uci.StatusSessionNotConfigured {
		t.Errorf("expected SESSION_NOT_CONFIGURED, got %v", status)
	}
}

func TestSessionSetAppConfigWhileActiveRejected(t *testing.T) {
	s := newSession(1, uci.SessionTypeFiraRanging)
	s.SetAppConfig(nil)
	s.Start()
	if status := s.SetAppConfig(nil); status != uci.StatusSessionActive {
		t.Errorf("expected SESSION_ACTIVE, got %v", status)
	}
}

func TestSessionStopIdempotent(t *testing.T) {
	s := newSession(1, uci.SessionTypeFiraRanging)
	if status := s.Stop(); status != uci.StatusOK {
		t.Errorf("expected idempotent stop to succeed, got %v", status)
	}
}

func TestSequenceNumberMonotonic(t *testing.T) {
	s := newSession(1, uci.SessionTypeFiraRanging)
	if n := s.NextSequenceNumber(); n != 0 {
		t.Errorf("expected first sequence number 0, got %d", n)
	}
	if n := s.NextSequenceNumber(); n != 1 {
		t.Errorf("expected second sequence number 1, got %d", n)
	}
}

func TestRangingIntervalDefaultsWhenUnset(t *testing.T) {
	s := newSession(1, uci.SessionTypeFiraRanging)
	if interval := s.RangingIntervalMs(); interval != defaultRangingIntervalMs {
		t.Errorf("expected default interval, got %d", interval)
	}
}
