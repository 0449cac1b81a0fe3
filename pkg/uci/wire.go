package uci

// Little-endian scalar helpers shared by the command/response encoders
// and decoders. UCI payloads are little-endian throughout.

func putU16LE(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

func putU32LE(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func putI16LE(b []byte, v int16) []byte {
	return putU16LE(b, uint16(v))
}

func getU16LE(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func getU32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func getI16LE(b []byte) int16 {
	return int16(getU16LE(b))
}
