// Package connection runs one task per accepted UCI TCP socket: an
// accumulate-then-frame read loop feeding the orchestrator, and an
// outbound drain loop writing whatever the orchestrator enqueues for
// that device back to the wire.
package connection

import (
	"errors"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/capture"
	"github.com/iamruinous/pica-emulator/internal/device"
	"github.com/iamruinous/pica-emulator/internal/orchestrator"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// Task owns one accepted connection for its whole lifetime: the read
// loop that turns bytes into orchestrator commands, the write loop that
// drains the device's outbound queue back to the socket, and (if
// configured) a pcapng tee of everything that crosses the wire in
// either direction.
type Task struct {
	handle  uint64
	conn    net.Conn
	framer  *uci.StreamFramer
	device  *device.Device
	inbox   chan<- any
	capture *capture.Writer
	log     *zap.Logger

	done           chan struct{}
	disconnectOnce sync.Once
}

// New builds a connection task for an already-minted device. The
// caller is responsible for having called Orchestrator.Inbox() with a
// ConnectMsg to obtain d before constructing the task.
func New(conn net.Conn, d *device.Device, inbox chan<- any, cap *capture.Writer, log *zap.Logger) *Task {
	return &Task{
		handle:  d.Handle,
		conn:    conn,
		framer:  uci.NewStreamFramer(conn, conn),
		device:  d,
		inbox:   inbox,
		capture: cap,
		log:     log.With(zap.Uint64("handle", d.Handle), zap.String("remote", conn.RemoteAddr().String())),
		done:    make(chan struct{}),
	}
}

// Run blocks until the connection terminates, driving the read loop in
// the calling goroutine and the write loop in a spawned one. It posts
// exactly one DisconnectMsg to the orchestrator on any termination
// path, whichever loop notices first.
func (t *Task) Run() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t.writeLoop()
	}()

	t.readLoop()

	close(t.done)
	_ = t.conn.Close()
	wg.Wait()

	if t.capture != nil {
		if err := t.capture.Close(); err != nil {
			t.log.Warn("error closing capture file", zap.Error(err))
		}
	}
	t.disconnect()
}

func (t *Task) readLoop() {
	for {
		pdu, err := t.framer.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.log.Debug("connection read error", zap.Error(err))
			}
			return
		}

		if t.capture != nil {
			if err := t.capture.WritePDU(capture.DirectionRx, pdu); err != nil {
				t.log.Warn("capture write failed", zap.Error(err))
			}
		}

		res := uci.Parse(pdu)
		switch res.Outcome {
		case uci.ParsedCommand:
			t.inbox <- orchestrator.CommandMsg{Handle: t.handle, Command: res.Command}
		case uci.ParsedError:
			if res.ErrorFrame != nil {
				if err := t.writeFrame(res.ErrorFrame); err != nil {
					t.log.Debug("failed writing synthesized error response", zap.Error(err))
					return
				}
			}
		case uci.ParsedSkip:
			// Response or Notification received on the inbound side; no-op.
		}
	}
}

func (t *Task) writeLoop() {
	for {
		select {
		case <-t.done:
			return
		case pdu := <-t.device.Outbound:
			if err := t.writeFrame(pdu); err != nil {
				t.log.Debug("connection write error", zap.Error(err))
				_ = t.conn.Close()
				return
			}
		}
	}
}

func (t *Task) writeFrame(pdu []byte) error {
	if t.capture != nil {
		if err := t.capture.WritePDU(capture.DirectionTx, pdu); err != nil {
			t.log.Warn("capture write failed", zap.Error(err))
		}
	}
	return t.framer.WriteFrame(pdu)
}

func (t *Task) disconnect() {
	t.disconnectOnce.Do(func() {
		t.inbox <- orchestrator.DisconnectMsg{Handle: t.handle}
	})
}
