package orchestrator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/device"
	"github.com/iamruinous/pica-emulator/internal/world"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

func (o *Orchestrator) handleCommand(m CommandMsg) {
	d, ok := o.w.Device(m.Handle)
	if !ok {
		o.log.Debug("command for unknown device handle", zap.Uint64("handle", m.Handle))
		return
	}
	o.dispatch(d, m.Command)
}

// dispatch routes one decoded command to its handler. Every branch
// enqueues exactly one Response, even on failure; branches that change
// session state additionally enqueue a SessionStatusNtf.
func (o *Orchestrator) dispatch(d *device.Device, cmd uci.Command) {
	switch c := cmd.(type) {

	case uci.DeviceResetCmd:
		d.CancelAllSessions()
		d.Config = make(map[uci.ConfigID][]byte)
		d.State = uci.DeviceStateReady
		d.Enqueue(uci.DeviceResetRsp{Status: uci.StatusOK}.Encode())

	case uci.GetDeviceInfoCmd:
		d.Enqueue(uci.GetDeviceInfoRsp{
			Status:         uci.StatusOK,
			UciVersion:     0x0100,
			MacVersion:     0x0100,
			PhyVersion:     0x0100,
			UciTestVersion: 0x0100,
		}.Encode())

	case uci.GetCapsInfoCmd:
		d.Enqueue(uci.GetCapsInfoRsp{Status: uci.StatusOK}.Encode())

	case uci.SetConfigCmd:
		for _, p := range c.Params {
			d.Config[p.ID] = p.Value
		}
		d.Enqueue(uci.SetConfigRsp{Status: uci.StatusOK}.Encode())

	case uci.GetConfigCmd:
		params := make([]uci.ConfigParam, 0, len(c.IDs))
		for _, id := range c.IDs {
			if v, ok := d.Config[id]; ok {
				params = append(params, uci.ConfigParam{ID: id, Value: v})
			}
		}
		d.Enqueue(uci.GetConfigRsp{Status: uci.StatusOK, Params: params}.Encode())

	case uci.SessionInitCmd:
		o.dispatchSessionInit(d, c)
	case uci.SessionDeinitCmd:
		o.dispatchSessionDeinit(d, c)
	case uci.SessionSetAppConfigCmd:
		o.dispatchSessionSetAppConfig(d, c)

	case uci.SessionGetAppConfigCmd:
		s, ok := d.Session(c.SessionID)
		if !ok {
			d.Enqueue(uci.SessionGetAppConfigRsp{Status: uci.StatusSessionNotExist}.Encode())
			return
		}
		d.Enqueue(uci.SessionGetAppConfigRsp{Status: uci.StatusOK, Params: s.AppConfigValues(c.IDs)}.Encode())

	case uci.SessionGetCountCmd:
		d.Enqueue(uci.SessionGetCountRsp{Status: uci.StatusOK, Count: byte(d.SessionCount())}.Encode())

	case uci.SessionGetStateCmd:
		s, ok := d.Session(c.SessionID)
		if !ok {
			d.Enqueue(uci.SessionGetStateRsp{Status: uci.StatusSessionNotExist}.Encode())
			return
		}
		d.Enqueue(uci.SessionGetStateRsp{Status: uci.StatusOK, State: s.State}.Encode())

	case uci.SessionUpdateControllerMulticastListCmd:
		if _, ok := d.Session(c.SessionID); !ok {
			d.Enqueue(uci.SessionUpdateControllerMulticastListRsp{Status: uci.StatusSessionNotExist}.Encode())
			return
		}
		d.Enqueue(uci.SessionUpdateControllerMulticastListRsp{Status: uci.StatusOK}.Encode())

	case uci.RangeStartCmd:
		o.dispatchRangeStart(d, c)
	case uci.RangeStopCmd:
		o.dispatchRangeStop(d, c)

	case uci.RangeGetRangingCountCmd:
		s, ok := d.Session(c.SessionID)
		if !ok {
			d.Enqueue(uci.RangeGetRangingCountRsp{Status: uci.StatusSessionNotExist}.Encode())
			return
		}
		d.Enqueue(uci.RangeGetRangingCountRsp{Status: uci.StatusOK, Count: s.SequenceNumber}.Encode())

	case uci.SetCountryCodeCmd:
		d.CountryCode = c.CountryCode
		d.Enqueue(uci.SetCountryCodeRsp{Status: uci.StatusOK}.Encode())

	case uci.GetPowerStatsCmd:
		d.Enqueue(uci.GetPowerStatsRsp{Status: uci.StatusOK}.Encode())

	case uci.InitDeviceCmd:
		o.dispatchInitDevice(d, c)
	case uci.SetDevicePositionCmd:
		o.dispatchSetDevicePosition(d, c)
	case uci.CreateAnchorCmd:
		o.dispatchCreateAnchorWire(d, c)
	case uci.SetAnchorPositionCmd:
		o.dispatchSetAnchorPositionWire(d, c)
	case uci.DestroyAnchorCmd:
		o.dispatchDestroyAnchorWire(d, c)

	default:
		o.log.Warn("orchestrator: no dispatch handler registered", zap.String("type", fmt.Sprintf("%T", cmd)))
	}
}

func (o *Orchestrator) dispatchSessionInit(d *device.Device, c uci.SessionInitCmd) {
	_, status := d.CreateSession(c.SessionID, c.SessionType)
	d.Enqueue(uci.SessionInitRsp{Status: status}.Encode())
	if status == uci.StatusOK {
		d.Enqueue(uci.SessionStatusNtf{
			SessionID: c.SessionID,
			State:     uci.SessionStateInit,
			Reason:    uci.ReasonStateChangeWithSessionManagementCommands,
		}.Encode())
	}
}

func (o *Orchestrator) dispatchSessionDeinit(d *device.Device, c uci.SessionDeinitCmd) {
	status := d.DeinitSession(c.SessionID)
	d.Enqueue(uci.SessionDeinitRsp{Status: status}.Encode())
	if status == uci.StatusOK {
		d.Enqueue(uci.SessionStatusNtf{
			SessionID: c.SessionID,
			State:     uci.SessionStateDeinit,
			Reason:    uci.ReasonStateChangeWithSessionManagementCommands,
		}.Encode())
	}
}

func (o *Orchestrator) dispatchSessionSetAppConfig(d *device.Device, c uci.SessionSetAppConfigCmd) {
	s, ok := d.Session(c.SessionID)
	if !ok {
		d.Enqueue(uci.SessionSetAppConfigRsp{Status: uci.StatusSessionNotExist}.Encode())
		return
	}
	status := s.SetAppConfig(c.Params)
	d.Enqueue(uci.SessionSetAppConfigRsp{Status: status}.Encode())
	if status == uci.StatusOK {
		d.Enqueue(uci.SessionStatusNtf{
			SessionID: c.SessionID,
			State:     s.State,
			Reason:    uci.ReasonStateChangeWithSessionManagementCommands,
		}.Encode())
	}
}

func (o *Orchestrator) dispatchRangeStart(d *device.Device, c uci.RangeStartCmd) {
	s, ok := d.Session(c.SessionID)
	if !ok {
		d.Enqueue(uci.RangeStartRsp{Status: uci.StatusSessionNotExist}.Encode())
		return
	}
	if s.AddressMode() == uci.AddressModeExtended {
		d.Enqueue(uci.RangeStartRsp{Status: uci.StatusNotImplemented}.Encode())
		return
	}
	handle := d.Handle
	sessionID := s.ID
	status := s.Start()
	if status == uci.StatusOK {
		cancel := o.startRangingTask(handle, sessionID, s.RangingIntervalMs())
		s.SetRangingCancel(cancel)
		d.RecomputeState()
	}
	d.Enqueue(uci.RangeStartRsp{Status: status}.Encode())
	if status == uci.StatusOK {
		d.Enqueue(uci.SessionStatusNtf{
			SessionID: c.SessionID,
			State:     uci.SessionStateActive,
			Reason:    uci.ReasonStateChangeWithSessionManagementCommands,
		}.Encode())
	}
}

func (o *Orchestrator) dispatchRangeStop(d *device.Device, c uci.RangeStopCmd) {
	s, ok := d.Session(c.SessionID)
	if !ok {
		d.Enqueue(uci.RangeStopRsp{Status: uci.StatusSessionNotExist}.Encode())
		return
	}
	wasActive := s.State == uci.SessionStateActive
	status := s.Stop()
	d.RecomputeState()
	d.Enqueue(uci.RangeStopRsp{Status: status}.Encode())
	if status == uci.StatusOK && wasActive {
		d.Enqueue(uci.SessionStatusNtf{
			SessionID: c.SessionID,
			State:     uci.SessionStateIdle,
			Reason:    uci.ReasonStateChangeWithSessionManagementCommands,
		}.Encode())
	}
}

func (o *Orchestrator) dispatchInitDevice(d *device.Device, c uci.InitDeviceCmd) {
	if o.w.CategoryOf(c.Mac) != world.CategoryUnknown {
		if existing, ok := o.w.DeviceByMac(c.Mac); !ok || existing.Handle != d.Handle {
			d.Enqueue(uci.InitDeviceRsp{Status: uci.StatusFailed}.Encode())
			return
		}
	}
	d.MacAddress = c.Mac
	d.Pose = c.Pose
	d.Enqueue(uci.InitDeviceRsp{Status: uci.StatusOK}.Encode())
	o.broadcast(Event{Kind: DeviceUpdated, Mac: d.MacAddress, Pose: d.Pose})
	o.emitNeighborFanout(d.MacAddress, d.Pose)
}

func (o *Orchestrator) dispatchSetDevicePosition(d *device.Device, c uci.SetDevicePositionCmd) {
	d.Pose = c.Pose
	d.Enqueue(uci.SetDevicePositionRsp{Status: uci.StatusOK}.Encode())
	o.broadcast(Event{Kind: DeviceUpdated, Mac: d.MacAddress, Pose: d.Pose})
	o.emitNeighborFanout(d.MacAddress, d.Pose)
}

func (o *Orchestrator) dispatchCreateAnchorWire(d *device.Device, c uci.CreateAnchorCmd) {
	if err := o.w.CreateAnchor(c.Mac, c.Pose); err != nil {
		d.Enqueue(uci.CreateAnchorRsp{Status: uci.StatusFailed}.Encode())
		return
	}
	d.Enqueue(uci.CreateAnchorRsp{Status: uci.StatusOK}.Encode())
	o.broadcast(Event{Kind: DeviceAdded, Mac: c.Mac, Pose: c.Pose})
	o.emitNeighborFanout(c.Mac, c.Pose)
}

func (o *Orchestrator) dispatchSetAnchorPositionWire(d *device.Device, c uci.SetAnchorPositionCmd) {
	a, ok := o.w.Anchor(c.Mac)
	if !ok {
		d.Enqueue(uci.SetAnchorPositionRsp{Status: uci.StatusFailed}.Encode())
		return
	}
	a.Pose = c.Pose
	d.Enqueue(uci.SetAnchorPositionRsp{Status: uci.StatusOK}.Encode())
	o.broadcast(Event{Kind: DeviceUpdated, Mac: c.Mac, Pose: c.Pose})
	o.emitNeighborFanout(c.Mac, c.Pose)
}

func (o *Orchestrator) dispatchDestroyAnchorWire(d *device.Device, c uci.DestroyAnchorCmd) {
	a, ok := o.w.Anchor(c.Mac)
	if !ok {
		d.Enqueue(uci.DestroyAnchorRsp{Status: uci.StatusFailed}.Encode())
		return
	}
	pose := a.Pose
	o.w.DestroyAnchor(c.Mac)
	d.Enqueue(uci.DestroyAnchorRsp{Status: uci.StatusOK}.Encode())
	o.broadcast(Event{Kind: DeviceRemoved, Mac: c.Mac, Pose: pose})
}
