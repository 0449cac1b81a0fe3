package world

import (
	"testing"

	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

func TestNewDeviceAssignsMonotonicHandles(t *testing.T) {
	w := New()
	d0, err := w.NewDevice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d1, err := w.NewDevice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d0.Handle != 0 || d1.Handle != 1 {
		t.Errorf("expected handles 0,1 got %d,%d", d0.Handle, d1.Handle)
	}
}

func TestNewDeviceMaxExceeded(t *testing.T) {
	w := New()
	for i := 0; i < MaxDevices; i++ {
		if _, err := w.NewDevice(); err != nil {
			t.Fatalf("device %d: unexpected error %v", i, err)
		}
	}
	if _, err := w.NewDevice(); err != ErrMaxDevicesExceeded {
		t.Errorf("expected ErrMaxDevicesExceeded, got %v", err)
	}
}

func TestRemoveDevice(t *testing.T) {
	w := New()
	d, _ := w.NewDevice()
	if _, ok := w.RemoveDevice(d.Handle); !ok {
		t.Fatal("expected removal to succeed")
	}
	if _, ok := w.Device(d.Handle); ok {
		t.Error("device should no longer be present")
	}
	if _, ok := w.RemoveDevice(d.Handle); ok {
		t.Error("second removal should report not found")
	}
}

func TestCreateAnchorRejectsMacCollisionWithDevice(t *testing.T) {
	w := New()
	d, _ := w.NewDevice()
	if err := w.CreateAnchor(d.MacAddress, geometry.Pose{}); err != ErrMacCollision {
		t.Errorf("expected ErrMacCollision, got %v", err)
	}
}

func TestCreateAnchorRejectsDuplicateAnchor(t *testing.T) {
	w := New()
	mac := uci.NewShortMac(0xAA, 0xBB)
	if err := w.CreateAnchor(mac, geometry.Pose{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.CreateAnchor(mac, geometry.Pose{}); err != ErrMacCollision {
		t.Errorf("expected ErrMacCollision, got %v", err)
	}
}

func TestCategoryOf(t *testing.T) {
	w := New()
	d, _ := w.NewDevice()
	anchorMac := uci.NewShortMac(0x01, 0x02)
	w.CreateAnchor(anchorMac, geometry.Pose{})

	if cat := w.CategoryOf(d.MacAddress); cat != CategoryDevice {
		t.Errorf("expected CategoryDevice, got %v", cat)
	}
	if cat := w.CategoryOf(anchorMac); cat != CategoryAnchor {
		t.Errorf("expected CategoryAnchor, got %v", cat)
	}
	if cat := w.CategoryOf(uci.NewShortMac(0xFF, 0xFF)); cat != CategoryUnknown {
		t.Errorf("expected CategoryUnknown, got %v", cat)
	}
}

func TestSnapshotIncludesDevicesAndAnchors(t *testing.T) {
	w := New()
	w.NewDevice()
	w.CreateAnchor(uci.NewShortMac(0x01, 0x02), geometry.Pose{})

	snap := w.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(snap))
	}
}

func TestOtherEntitiesExcludesSelf(t *testing.T) {
	w := New()
	d, _ := w.NewDevice()
	anchorMac := uci.NewShortMac(0x01, 0x02)
	w.CreateAnchor(anchorMac, geometry.Pose{})

	others := w.OtherEntities(d.MacAddress)
	if len(others) != 1 || others[0].MacAddress != anchorMac {
		t.Errorf("unexpected others: %+v", others)
	}
}
