package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/pkg/uci"
)

func (o *Orchestrator) handleRanging(m RangingMsg) {
	d, ok := o.w.Device(m.Handle)
	if !ok {
		return
	}
	s, ok := d.Session(m.SessionID)
	if !ok || s.State != uci.SessionStateActive {
		return
	}

	dsts := s.DestinationMacs()
	measurements := make([]uci.ShortMacMeasurement, 0, len(dsts))
	for _, dst := range dsts {
		pose, found := o.w.PoseOf(dst)
		if !found {
			continue
		}
		distance, azimuth, elevation := d.Pose.Relative(pose)
		measurements = append(measurements, uci.ShortMacMeasurement{
			Mac:             dst,
			Status:          uci.StatusOK,
			NLoS:            0,
			Distance:        distance,
			AoAAzimuth:      azimuth,
			AoAAzimuthFOM:   100,
			AoAElevation:    elevation,
			AoAElevationFOM: 100,
			SlotIndex:       0,
		})
	}

	ntf := uci.ShortMacTwoWayRangeDataNtf{
		SessionID:           s.ID,
		SeqNum:              s.NextSequenceNumber(),
		RcrIndicator:        0,
		CurrRangingInterval: s.RangingIntervalMs(),
		Measurements:        measurements,
	}
	if !d.Enqueue(ntf.Encode()) {
		o.log.Warn("dropped ranging notification, outbound queue full",
			zap.Uint64("handle", m.Handle), zap.Uint32("session", m.SessionID))
	}
}

// startRangingTask spawns a goroutine that posts a RangingMsg into the
// inbox at the given interval until its context is cancelled. It holds
// only the handle and session id, never a reference to the Device or
// Session themselves, so it cannot outlive or race with orchestrator-
// owned state; it is the only asynchronous producer of RangingMsg.
func (o *Orchestrator) startRangingTask(handle uint64, sessionID uint32, intervalMs uint32) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	interval := time.Duration(intervalMs) * time.Millisecond

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case o.inbox <- RangingMsg{Handle: handle, SessionID: sessionID}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return cancel
}
