package uci

import "fmt"

// AddressMode distinguishes short (2-byte) from extended (8-byte) MAC
// addressing, carried as a leading mode byte wherever a MacAddress
// appears on the wire.
type AddressMode byte

const (
	AddressModeShort    AddressMode = 0
	AddressModeExtended AddressMode = 1
)

// MacAddress is a tagged union over short and extended UCI MAC forms.
// Equality and hashing (as a Go map key) both use the tagged form, so a
// Short and an Extended address are never considered equal even if their
// low bytes coincide.
type MacAddress struct {
	Mode     AddressMode
	Short    [2]byte
	Extended [8]byte
}

// NewShortMac builds a Short MacAddress from its two bytes.
func NewShortMac(b0, b1 byte) MacAddress {
	return MacAddress{Mode: AddressModeShort, Short: [2]byte{b0, b1}}
}

// NewExtendedMac builds an Extended MacAddress from its eight bytes.
func NewExtendedMac(b [8]byte) MacAddress {
	return MacAddress{Mode: AddressModeExtended, Extended: b}
}

// ShortFromHandle converts a process-unique device handle into a Short
// MacAddress, used as a device's MAC until INIT_DEVICE assigns another.
func ShortFromHandle(handle uint64) MacAddress {
	return NewShortMac(byte(handle>>8), byte(handle))
}

// String renders the address for logs, independent of mode.
func (m MacAddress) String() string {
	switch m.Mode {
	case AddressModeExtended:
		return fmt.Sprintf("%x", m.Extended[:])
	default:
		return fmt.Sprintf("%x", m.Short[:])
	}
}

// IsExtended reports whether this is an 8-byte address.
func (m MacAddress) IsExtended() bool {
	return m.Mode == AddressModeExtended
}

// ShortUint16 returns the 2-byte short address as a big-endian uint16,
// the form used in ranging measurement payloads. It panics if called on
// an Extended address; callers must branch on IsExtended first.
func (m MacAddress) ShortUint16() uint16 {
	if m.Mode == AddressModeExtended {
		panic("uci: ShortUint16 called on an Extended MacAddress")
	}
	return uint16(m.Short[0])<<8 | uint16(m.Short[1])
}

// wireLen is the number of bytes this address occupies on the wire,
// including neither the mode byte nor any length prefix.
func (m MacAddress) wireLen() int {
	if m.Mode == AddressModeExtended {
		return 8
	}
	return 2
}

func (m MacAddress) encodeInto(buf []byte) []byte {
	if m.Mode == AddressModeExtended {
		return append(buf, m.Extended[:]...)
	}
	return append(buf, m.Short[:]...)
}

func decodeMac(mode AddressMode, data []byte) (MacAddress, []byte, error) {
	n := 2
	if mode == AddressModeExtended {
		n = 8
	}
	if len(data) < n {
		return MacAddress{}, nil, fmt.Errorf("uci: short read decoding mac address: need %d have %d", n, len(data))
	}
	if mode == AddressModeExtended {
		var b [8]byte
		copy(b[:], data[:8])
		return NewExtendedMac(b), data[8:], nil
	}
	return NewShortMac(data[0], data[1]), data[2:], nil
}
