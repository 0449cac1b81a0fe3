package uci

// Helpers for two of the app config parameters this emulator
// interprets: the destination MAC list and the ranging interval. The
// MAC address mode is read directly from its single byte by the
// session; every other AppConfigID round-trips as an opaque byte value.

// EncodeDstMacAddressList renders a destination list as a count byte
// followed by each address's short-form bytes; extended destinations
// are not encoded (only an address's Short bytes are written).
func EncodeDstMacAddressList(macs []MacAddress) []byte {
	b := []byte{byte(len(macs))}
	for _, m := range macs {
		b = append(b, m.Short[0], m.Short[1])
	}
	return b
}

// DecodeDstMacAddressList parses the value written by
// EncodeDstMacAddressList.
func DecodeDstMacAddressList(b []byte) ([]MacAddress, error) {
	if len(b) < 1 {
		return nil, ErrShortPayload
	}
	n := int(b[0])
	rest := b[1:]
	if len(rest) < n*2 {
		return nil, ErrShortPayload
	}
	macs := make([]MacAddress, n)
	for i := 0; i < n; i++ {
		macs[i] = NewShortMac(rest[i*2], rest[i*2+1])
	}
	return macs, nil
}

// EncodeRangingInterval renders a ranging interval in milliseconds as a
// 4-byte little-endian value.
func EncodeRangingInterval(ms uint32) []byte {
	return putU32LE(nil, ms)
}

// DecodeRangingInterval is the inverse of EncodeRangingInterval.
func DecodeRangingInterval(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrShortPayload
	}
	return getU32LE(b), nil
}
