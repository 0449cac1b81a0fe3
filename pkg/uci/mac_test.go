package uci

import "testing"

func TestDecodeMacShort(t *testing.T) {
	mac, rest, err := decodeMac(AddressModeShort, []byte{0x12, 0x34, 0xFF})
	if err != nil {
		t.Fatalf("decodeMac: %v", err)
	}
	if mac != NewShortMac(0x12, 0x34) {
		t.Errorf("got %v", mac)
	}
	if len(rest) != 1 || rest[0] != 0xFF {
		t.Errorf("unexpected remainder: %v", rest)
	}
}

func TestDecodeMacExtended(t *testing.T) {
	raw := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	mac, rest, err := decodeMac(AddressModeExtended, append(raw[:], 0xAA))
	if err != nil {
		t.Fatalf("decodeMac: %v", err)
	}
	if mac != NewExtendedMac(raw) {
		t.Errorf("got %v", mac)
	}
	if len(rest) != 1 || rest[0] != 0xAA {
		t.Errorf("unexpected remainder: %v", rest)
	}
}

func TestDecodeMacShortTooFewBytes(t *testing.T) {
	if _, _, err := decodeMac(AddressModeShort, []byte{0x01}); err == nil {
		t.Error("expected error on truncated short mac")
	}
}

func TestMacEncodeInto(t *testing.T) {
	mac := NewShortMac(0xAB, 0xCD)
	buf := mac.encodeInto(nil)
	if len(buf) != 2 || buf[0] != 0xAB || buf[1] != 0xCD {
		t.Errorf("unexpected encoding: %v", buf)
	}
}

func TestShortFromHandle(t *testing.T) {
	mac := ShortFromHandle(0x0102)
	if mac != NewShortMac(0x01, 0x02) {
		t.Errorf("got %v", mac)
	}
}
