package uciclient

import (
	"net"
	"testing"
	"time"

	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// loopbackHost accepts one connection and echoes every frame it reads
// straight back, standing in for a real UCI core in tests of the
// client wrapper itself.
func loopbackHost(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		framer := uci.NewStreamFramer(conn, conn)
		for {
			pdu, err := framer.ReadFrame()
			if err != nil {
				return
			}
			if err := framer.WriteFrame(pdu); err != nil {
				return
			}
		}
	}()

	return ln.Addr().String()
}

func TestDialSendsAndReceivesFrames(t *testing.T) {
	addr := loopbackHost(t)
	client := Dial(t, addr)
	defer client.Close()

	client.MustSendCommand(uci.GroupCore, uci.OpcodeGetDeviceInfo, nil)
	pdu := client.MustReadFrame(time.Second)

	if pdu[0]>>5 != byte(uci.MessageTypeCommand) {
		t.Errorf("expected echoed command header, got %v", pdu[:4])
	}
	if pdu[0]&0x0F != uci.GroupCore || pdu[1]&0x3F != uci.OpcodeGetDeviceInfo {
		t.Errorf("unexpected group/opcode in echoed frame: %v", pdu[:4])
	}
}

func TestMustInitDeviceEncodesMacAndPose(t *testing.T) {
	addr := loopbackHost(t)
	client := Dial(t, addr)
	defer client.Close()

	mac := uci.NewShortMac(0x12, 0x34)
	pose := geometry.NewFromEuler(100, -200, 300, geometry.Euler{Yaw: 90, Pitch: 0, Roll: 0})

	rsp := client.MustInitDevice(mac, pose)
	if rsp[1]&0x3F != uci.OpcodeInitDevice {
		t.Fatalf("expected echoed INIT_DEVICE opcode, got %v", rsp[:4])
	}

	payload := rsp[uci.HeaderSize:]
	if uci.AddressMode(payload[0]) != uci.AddressModeShort {
		t.Errorf("expected short address mode, got %v", payload[0])
	}
	if payload[1] != 0x12 || payload[2] != 0x34 {
		t.Errorf("mac bytes not round-tripped: %v", payload[1:3])
	}
}

func TestWaitForFrameSkipsNonMatchingFrames(t *testing.T) {
	addr := loopbackHost(t)
	client := Dial(t, addr)
	defer client.Close()

	client.MustSendCommand(uci.GroupCore, uci.OpcodeDeviceReset, nil)
	client.MustSendCommand(uci.GroupCore, uci.OpcodeGetDeviceInfo, nil)

	pdu, ok := client.WaitForFrame(time.Second, func(pdu []byte) bool {
		return pdu[1]&0x3F == uci.OpcodeGetDeviceInfo
	})
	if !ok {
		t.Fatal("expected to find the GET_DEVICE_INFO echo")
	}
	if pdu[1]&0x3F != uci.OpcodeGetDeviceInfo {
		t.Errorf("WaitForFrame returned the wrong frame: %v", pdu[:4])
	}
}

func TestWaitForFrameTimesOutWhenNothingMatches(t *testing.T) {
	addr := loopbackHost(t)
	client := Dial(t, addr)
	defer client.Close()

	client.MustSendCommand(uci.GroupCore, uci.OpcodeDeviceReset, nil)

	_, ok := client.WaitForFrame(100*time.Millisecond, func(pdu []byte) bool {
		return pdu[1]&0x3F == uci.OpcodeGetCapsInfo
	})
	if ok {
		t.Error("expected no match within the timeout")
	}
}
