// Package capture writes a pcapng tee of every UCI PDU exchanged over a
// connection, one file per device handle.
package capture

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Direction tags which way a PDU travelled relative to the emulator.
type Direction byte

const (
	// DirectionRx is a PDU the emulator received from the host.
	DirectionRx Direction = 0x00
	// DirectionTx is a PDU the emulator sent to the host.
	DirectionTx Direction = 0x01
)

const (
	blockTypeSectionHeader    uint32 = 0x0A0D0D0A
	blockTypeInterfaceDesc    uint32 = 0x00000001
	blockTypeEnhancedPacket   uint32 = 0x00000006
	byteOrderMagic            uint32 = 0x1A2B3C4D
	linkTypeUser0             uint16 = 147 // LINKTYPE_USER0, private use
	snapLen                   uint32 = 65535
)

// Writer appends framed UCI PDUs to a pcapng file, one Enhanced Packet
// Block per PDU, prefixed with a 1-byte direction tag. Safe for
// concurrent use by a connection's read loop and write loop.
type Writer struct {
	mu sync.Mutex
	f  *os.File
}

// Open creates (or truncates) "<dir>/device-<handle>.pcapng" and writes
// the Section Header Block and Interface Description Block every
// pcapng reader expects before any Enhanced Packet Block.
func Open(dir string, handle uint64) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("capture: create dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("device-%d.pcapng", handle))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: create file: %w", err)
	}
	w := &Writer{f: f}
	if err := w.writeSectionHeader(); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeInterfaceDescription(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeSectionHeader() error {
	// No options, and no end-of-options terminator, are written.
	const bodyLen = 4 /*byte-order*/ + 2 /*major*/ + 2 /*minor*/ + 8 /*section len*/
	total := uint32(12 + bodyLen) // block type + total length*2 + body

	buf := make([]byte, 0, total)
	buf = appendU32(buf, blockTypeSectionHeader)
	buf = appendU32(buf, total)
	buf = appendU32(buf, byteOrderMagic)
	buf = appendU16(buf, 1) // major version
	buf = appendU16(buf, 0) // minor version
	buf = appendU64(buf, ^uint64(0))
	buf = appendU32(buf, total)
	return w.write(buf)
}

func (w *Writer) writeInterfaceDescription() error {
	const bodyLen = 2 /*linktype*/ + 2 /*reserved*/ + 4 /*snaplen*/
	total := uint32(12 + bodyLen)

	buf := make([]byte, 0, total)
	buf = appendU32(buf, blockTypeInterfaceDesc)
	buf = appendU32(buf, total)
	buf = appendU16(buf, linkTypeUser0)
	buf = appendU16(buf, 0)
	buf = appendU32(buf, snapLen)
	buf = appendU32(buf, total)
	return w.write(buf)
}

// WritePDU appends one Enhanced Packet Block: a 1-byte direction prefix
// followed by the raw PDU bytes, timestamped with the current wall
// clock at microsecond resolution.
func (w *Writer) WritePDU(dir Direction, pdu []byte) error {
	payload := make([]byte, 0, len(pdu)+1)
	payload = append(payload, byte(dir))
	payload = append(payload, pdu...)

	padded := (len(payload) + 3) &^ 3
	const fixedLen = 4 /*ifid*/ + 4 /*ts high*/ + 4 /*ts low*/ + 4 /*caplen*/ + 4 /*origlen*/
	total := uint32(12 + fixedLen + padded)

	us := uint64(time.Now().UnixMicro())

	buf := make([]byte, 0, total)
	buf = appendU32(buf, blockTypeEnhancedPacket)
	buf = appendU32(buf, total)
	buf = appendU32(buf, 0) // interface id
	buf = appendU32(buf, uint32(us>>32))
	buf = appendU32(buf, uint32(us))
	buf = appendU32(buf, uint32(len(payload)))
	buf = appendU32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	for i := len(payload); i < padded; i++ {
		buf = append(buf, 0)
	}
	buf = appendU32(buf, total)
	return w.write(buf)
}

func (w *Writer) write(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.f.Write(b)
	return err
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

var _ io.Closer = (*Writer)(nil)

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}
