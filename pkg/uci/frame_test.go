package uci

import (
	"bytes"
	"io"
	"testing"
)

func TestStreamFramerWriteRead(t *testing.T) {
	buf := &bytes.Buffer{}
	framer := NewStreamFramer(buf, buf)

	pdu := frame(MessageTypeCommand, GroupCore, OpcodeGetDeviceInfo, nil)
	if err := framer.WriteFrame(pdu); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	got, err := framer.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(pdu, got) {
		t.Errorf("frame mismatch: expected %v, got %v", pdu, got)
	}
}

func TestStreamFramerMultipleFrames(t *testing.T) {
	buf := &bytes.Buffer{}
	framer := NewStreamFramer(buf, buf)

	pdus := [][]byte{
		frame(MessageTypeCommand, GroupCore, OpcodeDeviceReset, []byte{0x00}),
		frame(MessageTypeCommand, GroupSession, OpcodeSessionInit, []byte{1, 0, 0, 0, 0}),
		frame(MessageTypeResponse, GroupCore, OpcodeGetDeviceInfo, make([]byte, 64)),
	}

	for i, p := range pdus {
		if err := framer.WriteFrame(p); err != nil {
			t.Fatalf("WriteFrame %d failed: %v", i, err)
		}
	}
	for i, want := range pdus {
		got, err := framer.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d failed: %v", i, err)
		}
		if !bytes.Equal(want, got) {
			t.Errorf("frame %d mismatch: expected %v, got %v", i, want, got)
		}
	}
}

// TestStreamFramerPartialReads exercises the case a single underlying
// Read only returns a few bytes at a time, including splits that land
// inside the 4-byte header itself.
func TestStreamFramerPartialReads(t *testing.T) {
	pdu := frame(MessageTypeCommand, GroupSession, OpcodeSessionSetAppConfig, []byte{1, 2, 3, 4, 5, 6, 7})
	r := &chunkedReader{data: pdu, chunk: 2}
	framer := NewStreamFramer(r, nil)

	got, err := framer.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(pdu, got) {
		t.Errorf("frame mismatch: expected %v, got %v", pdu, got)
	}
}

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{MessageType: MessageTypeCommand, PBF: PBFComplete, GroupID: GroupRanging, OpcodeID: OpcodeRangeStart, Length: 4}
	enc := h.encode()
	got, err := parseHeader(enc[:])
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}
}

func TestParseHeaderShort(t *testing.T) {
	if _, err := parseHeader([]byte{0x21, 0x00}); err != ErrShortHeader {
		t.Errorf("expected ErrShortHeader, got %v", err)
	}
}

// chunkedReader returns at most chunk bytes per Read call, simulating a
// TCP socket that delivers a PDU across several reads.
type chunkedReader struct {
	data  []byte
	chunk int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}
