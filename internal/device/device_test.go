package device

import (
	"testing"

	"github.com/iamruinous/pica-emulator/pkg/uci"
)

func TestNewDeviceIsReady(t *testing.T) {
	d := New(1)
	if d.State != uci.DeviceStateReady {
		t.Errorf("expected Ready, got %v", d.State)
	}
	if d.SessionCount() != 0 {
		t.Errorf("expected no sessions, got %d", d.SessionCount())
	}
}

func TestCreateSessionDuplicateRejected(t *testing.T) {
	d := New(1)
	if _, status := d.CreateSession(1, uci.SessionTypeFiraRanging); status != uci.StatusOK {
		t.Fatalf("unexpected status: %v", status)
	}
	if _, status := d.CreateSession(1, uci.SessionTypeFiraRanging); status != uci.StatusSessionDuplicate {
		t.Errorf("expected SESSION_DUPLICATE, got %v", status)
	}
}

func TestCreateSessionMaxExceeded(t *testing.T) {
	d := New(1)
	for i := 0; i < MaxSessionsPerDevice; i++ {
		if _, status := d.CreateSession(uint32(i), uci.SessionTypeFiraRanging); status != uci.StatusOK {
			t.Fatalf("session %d: unexpected status %v", i, status)
		}
	}
	if _, status := d.CreateSession(MaxSessionsPerDevice, uci.SessionTypeFiraRanging); status != uci.StatusMaxSessionsExceeded {
		t.Errorf("expected MAX_SESSIONS_EXCEEDED, got %v", status)
	}
}

func TestDeinitUnknownSession(t *testing.T) {
	d := New(1)
	if status := d.DeinitSession(99); status != uci.StatusSessionNotExist {
		t.Errorf("expected SESSION_NOT_EXIST, got %v", status)
	}
}

func TestDeviceStateFollowsSessions(t *testing.T) {
	d := New(1)
	s, _ := d.CreateSession(1, uci.SessionTypeFiraRanging)
	s.SetAppConfig(nil)
	if status := s.Start(); status != uci.StatusOK {
		t.Fatalf("unexpected start status: %v", status)
	}
	d.RecomputeState()
	if d.State != uci.DeviceStateActive {
		t.Errorf("expected Active, got %v", d.State)
	}

	s.Stop()
	d.RecomputeState()
	if d.State != uci.DeviceStateReady {
		t.Errorf("expected Ready after stop, got %v", d.State)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	d := New(1)
	for i := 0; i < OutboundQueueCapacity; i++ {
		if !d.Enqueue([]byte{byte(i)}) {
			t.Fatalf("enqueue %d unexpectedly dropped", i)
		}
	}
	if d.Enqueue([]byte{0xFF}) {
		t.Error("expected enqueue to report drop once the queue is full")
	}
}

func TestSessionIDsSorted(t *testing.T) {
	d := New(1)
	d.CreateSession(5, uci.SessionTypeFiraRanging)
	d.CreateSession(1, uci.SessionTypeFiraRanging)
	d.CreateSession(3, uci.SessionTypeFiraRanging)
	ids := d.SessionIDs()
	want := []uint32{1, 3, 5}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("got %v, want %v", ids, want)
			break
		}
	}
}
