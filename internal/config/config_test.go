package config

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsSamePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Listen.HTTPPort = cfg.Listen.UCIPort
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when uci_port == http_port")
	}
}

func TestValidateRejectsBadAnchorMac(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.InitialAnchors = []AnchorConfig{{Mac: "AA"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for short anchor mac")
	}
}

func TestValidateRejectsUnknownObserverType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Observers = []ObserverConfig{{Type: "carrier-pigeon", Enabled: true}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown observer type")
	}
}

func TestValidateRejectsCaptureEnabledWithoutDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capture.Enabled = true
	cfg.Capture.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when capture is enabled without a dir")
	}
}
