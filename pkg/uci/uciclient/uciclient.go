// Package uciclient is a fake UCI host for tests: it dials a TCP
// listener the way a real UWB chip's driver would and lets a test
// drive the connection with typed Must*/WaitFor* helpers instead of
// hand-built frame bytes. It replaces a PTY-based hardware simulator
// with a TCP-loopback one, since this core's wire transport is TCP
// rather than a serial device.
package uciclient

import (
	"net"
	"testing"
	"time"

	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// DefaultTimeout bounds Must* calls that don't take an explicit one.
const DefaultTimeout = 2 * time.Second

// Client is a single fake UCI device's TCP connection, wrapped with
// test-friendly helpers. Every Must* method fails the test immediately
// on error rather than returning one.
type Client struct {
	t      *testing.T
	conn   net.Conn
	framer *uci.StreamFramer
}

// Dial connects to addr and fails the test if the connection cannot be
// established within DefaultTimeout.
func Dial(t *testing.T, addr string) *Client {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, DefaultTimeout)
	if err != nil {
		t.Fatalf("uciclient: dial %s: %v", addr, err)
	}
	return &Client{
		t:      t,
		conn:   conn,
		framer: uci.NewStreamFramer(conn, conn),
	}
}

// Close closes the underlying connection.
func (c *Client) Close() {
	_ = c.conn.Close()
}

// Conn exposes the raw connection for tests that need to manipulate it
// directly, e.g. to close it mid-exchange and assert server cleanup.
func (c *Client) Conn() net.Conn {
	return c.conn
}

// MustSendRaw writes a pre-framed PDU, failing the test on error.
func (c *Client) MustSendRaw(pdu []byte) {
	c.t.Helper()
	if err := c.framer.WriteFrame(pdu); err != nil {
		c.t.Fatalf("uciclient: write frame: %v", err)
	}
}

// MustSendCommand frames and writes a command PDU for the given
// group/opcode, failing the test on error.
func (c *Client) MustSendCommand(groupID, opcodeID byte, payload []byte) {
	c.t.Helper()
	c.MustSendRaw(uci.EncodeCommandFrame(groupID, opcodeID, payload))
}

// MustReadFrame blocks up to timeout for one framed PDU, failing the
// test on timeout or any read error.
func (c *Client) MustReadFrame(timeout time.Duration) []byte {
	c.t.Helper()
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		c.t.Fatalf("uciclient: set read deadline: %v", err)
	}
	pdu, err := c.framer.ReadFrame()
	if err != nil {
		c.t.Fatalf("uciclient: read frame: %v", err)
	}
	return pdu
}

// WaitForFrame reads frames until match returns true or timeout
// elapses, discarding any frame match rejects (e.g. an intervening
// notification while waiting for a specific response). It returns
// false rather than failing the test, since "it never arrived" is
// often the condition under test.
func (c *Client) WaitForFrame(timeout time.Duration, match func(pdu []byte) bool) ([]byte, bool) {
	c.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false
		}
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			c.t.Fatalf("uciclient: set read deadline: %v", err)
		}
		pdu, err := c.framer.ReadFrame()
		if err != nil {
			return nil, false
		}
		if match(pdu) {
			return pdu, true
		}
	}
}

// MustGetDeviceInfo sends GET_DEVICE_INFO and returns the raw response
// PDU.
func (c *Client) MustGetDeviceInfo() []byte {
	c.t.Helper()
	c.MustSendCommand(uci.GroupCore, uci.OpcodeGetDeviceInfo, nil)
	return c.MustReadFrame(DefaultTimeout)
}

// MustInitDevice sends an INIT_DEVICE command placing this connection's
// device at pose, and returns the raw response PDU.
func (c *Client) MustInitDevice(mac uci.MacAddress, pose geometry.Pose) []byte {
	c.t.Helper()
	c.MustSendCommand(uci.GroupPica, uci.OpcodeInitDevice, encodeMacAndPose(mac, pose))
	return c.MustReadFrame(DefaultTimeout)
}

// MustSetDevicePosition sends a SET_DEVICE_POSITION command and returns
// the raw response PDU.
func (c *Client) MustSetDevicePosition(pose geometry.Pose) []byte {
	c.t.Helper()
	c.MustSendCommand(uci.GroupPica, uci.OpcodeSetDevicePosition, encodePose(pose))
	return c.MustReadFrame(DefaultTimeout)
}

// MustCreateAnchor sends a CREATE_ANCHOR command and returns the raw
// response PDU.
func (c *Client) MustCreateAnchor(mac uci.MacAddress, pose geometry.Pose) []byte {
	c.t.Helper()
	c.MustSendCommand(uci.GroupPica, uci.OpcodeCreateAnchor, encodeMacAndPose(mac, pose))
	return c.MustReadFrame(DefaultTimeout)
}

// MustDestroyAnchor sends a DESTROY_ANCHOR command and returns the raw
// response PDU.
func (c *Client) MustDestroyAnchor(mac uci.MacAddress) []byte {
	c.t.Helper()
	payload := []byte{byte(mac.Mode)}
	payload = append(payload, macBytes(mac)...)
	c.MustSendCommand(uci.GroupPica, uci.OpcodeDestroyAnchor, payload)
	return c.MustReadFrame(DefaultTimeout)
}

// ResponseStatus extracts the status byte from a single-byte-status
// response PDU such as those this core's Rsp types produce.
func ResponseStatus(pdu []byte) uci.StatusCode {
	if len(pdu) < uci.HeaderSize+1 {
		return uci.StatusFailed
	}
	return uci.StatusCode(pdu[uci.HeaderSize])
}

// encodePose mirrors the wire layout commands_pica.go's encodePoseInto
// produces, without importing it directly since it is unexported.
func encodePose(pose geometry.Pose) []byte {
	e := pose.Quat.Euler()
	buf := make([]byte, 0, 12)
	buf = putI16LE(buf, pose.X)
	buf = putI16LE(buf, pose.Y)
	buf = putI16LE(buf, pose.Z)
	buf = putI16LE(buf, int16(e.Yaw*100))
	buf = putI16LE(buf, int16(e.Pitch*100))
	buf = putI16LE(buf, int16(e.Roll*100))
	return buf
}

func encodeMacAndPose(mac uci.MacAddress, pose geometry.Pose) []byte {
	buf := []byte{byte(mac.Mode)}
	buf = append(buf, macBytes(mac)...)
	buf = append(buf, encodePose(pose)...)
	return buf
}

func macBytes(mac uci.MacAddress) []byte {
	if mac.IsExtended() {
		return mac.Extended[:]
	}
	return mac.Short[:]
}

func putI16LE(b []byte, v int16) []byte {
	return append(b, byte(v), byte(v>>8))
}
