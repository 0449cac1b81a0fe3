package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/device"
	"github.com/iamruinous/pica-emulator/internal/world"
	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// InboxCapacity bounds the single shared inbox: worst case, every
// device has every session about to post a ranging tick at once.
const InboxCapacity = world.MaxDevices * device.MaxSessionsPerDevice

// subscriberBuffer bounds each observer's event channel; once full,
// new events are dropped for that subscriber rather than blocking the
// orchestrator loop.
const subscriberBuffer = 64

// Orchestrator is the single actor owning the world. Other goroutines
// reach it only by posting messages on Inbox() and, where a reply is
// expected, blocking on that message's own reply channel; all of the
// actual state mutation happens inside the Run goroutine.
type Orchestrator struct {
	inbox chan any
	log   *zap.Logger

	w    *world.World
	subs []chan Event
}

// New creates an orchestrator with an empty world. Call Run in its own
// goroutine to start processing the inbox.
func New(log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		inbox: make(chan any, InboxCapacity),
		log:   log,
		w:     world.New(),
	}
}

// Inbox exposes the send-only inbox for connection tasks, ranging
// tasks, and the control plane to post messages on.
func (o *Orchestrator) Inbox() chan<- any {
	return o.inbox
}

// Run processes the inbox until ctx is cancelled. It is the only
// goroutine that ever touches the world.
func (o *Orchestrator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-o.inbox:
			o.handle(msg)
		}
	}
}

func (o *Orchestrator) handle(msg any) {
	switch m := msg.(type) {
	case ConnectMsg:
		o.handleConnect(m)
	case DisconnectMsg:
		o.handleDisconnect(m)
	case RangingMsg:
		o.handleRanging(m)
	case CommandMsg:
		o.handleCommand(m)
	case SetPoseMsg:
		o.handleSetPose(m)
	case CreateAnchorMsg:
		o.handleCreateAnchor(m)
	case DestroyAnchorMsg:
		o.handleDestroyAnchor(m)
	case InitUciDeviceMsg:
		o.handleInitUciDevice(m)
	case GetStateMsg:
		m.Reply <- o.w.Snapshot()
	case SubscribeMsg:
		ch := make(chan Event, subscriberBuffer)
		o.subs = append(o.subs, ch)
		m.Reply <- ch
	default:
		o.log.Warn("orchestrator: unrecognized inbox message", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (o *Orchestrator) handleConnect(m ConnectMsg) {
	d, err := o.w.NewDevice()
	if err != nil {
		o.log.Warn("connect rejected", zap.Error(err))
		m.Reply <- nil
		return
	}
	o.log.Info("device connected", zap.Uint64("handle", d.Handle), zap.Stringer("mac", d.MacAddress))
	o.broadcast(Event{Kind: DeviceAdded, Mac: d.MacAddress, Pose: d.Pose})
	if !d.Enqueue(uci.DeviceStatusNtf{State: uci.DeviceStateReady}.Encode()) {
		o.log.Warn("dropped initial device status notification, outbound queue full", zap.Uint64("handle", d.Handle))
	}
	m.Reply <- d
}

func (o *Orchestrator) handleDisconnect(m DisconnectMsg) {
	d, ok := o.w.RemoveDevice(m.Handle)
	if !ok {
		return
	}
	o.log.Info("device disconnected", zap.Uint64("handle", m.Handle))
	o.broadcast(Event{Kind: DeviceRemoved, Mac: d.MacAddress, Pose: d.Pose})
}

func (o *Orchestrator) handleSetPose(m SetPoseMsg) {
	switch o.w.CategoryOf(m.Mac) {
	case world.CategoryDevice:
		d, _ := o.w.DeviceByMac(m.Mac)
		d.Pose = m.Pose
	case world.CategoryAnchor:
		a, _ := o.w.Anchor(m.Mac)
		a.Pose = m.Pose
	default:
		m.Reply <- failed(fmt.Errorf("set-pose: unknown mac %s", m.Mac))
		return
	}
	o.broadcast(Event{Kind: DeviceUpdated, Mac: m.Mac, Pose: m.Pose})
	o.emitNeighborFanout(m.Mac, m.Pose)
	m.Reply <- ok()
}

func (o *Orchestrator) handleCreateAnchor(m CreateAnchorMsg) {
	if err := o.w.CreateAnchor(m.Mac, m.Pose); err != nil {
		m.Reply <- failed(err)
		return
	}
	o.broadcast(Event{Kind: DeviceAdded, Mac: m.Mac, Pose: m.Pose})
	o.emitNeighborFanout(m.Mac, m.Pose)
	m.Reply <- ok()
}

func (o *Orchestrator) handleDestroyAnchor(m DestroyAnchorMsg) {
	a, ok := o.w.Anchor(m.Mac)
	if !ok {
		m.Reply <- failed(fmt.Errorf("destroy-anchor: unknown mac %s", m.Mac))
		return
	}
	pose := a.Pose
	o.w.DestroyAnchor(m.Mac)
	o.broadcast(Event{Kind: DeviceRemoved, Mac: m.Mac, Pose: pose})
	m.Reply <- ok()
}

func (o *Orchestrator) handleInitUciDevice(m InitUciDeviceMsg) {
	d, ok := o.w.DeviceByMac(m.Mac)
	if !ok {
		m.Reply <- failed(fmt.Errorf("init-uci-device: unknown device %s", m.Mac))
		return
	}
	d.Pose = m.Pose
	o.broadcast(Event{Kind: DeviceUpdated, Mac: m.Mac, Pose: m.Pose})
	o.emitNeighborFanout(m.Mac, m.Pose)
	m.Reply <- ok()
}

// emitNeighborFanout emits a NeighborUpdated pair, source->dest and
// dest->source, for every other live entity in the world.
func (o *Orchestrator) emitNeighborFanout(mac uci.MacAddress, pose geometry.Pose) {
	for _, other := range o.w.OtherEntities(mac) {
		dist, az, el := pose.Relative(other.Pose)
		o.broadcast(Event{
			Kind: NeighborUpdated, Mac: mac, Pose: pose,
			Neighbor: Neighbor{Of: other.MacAddress, Distance: dist, Azimuth: az, Elevation: el},
		})
		distRev, azRev, elRev := other.Pose.Relative(pose)
		o.broadcast(Event{
			Kind: NeighborUpdated, Mac: other.MacAddress, Pose: other.Pose,
			Neighbor: Neighbor{Of: mac, Distance: distRev, Azimuth: azRev, Elevation: elRev},
		})
	}
}

func (o *Orchestrator) broadcast(e Event) {
	for _, sub := range o.subs {
		select {
		case sub <- e:
		default:
			o.log.Debug("observer channel full, dropping event", zap.Stringer("kind", e.Kind))
		}
	}
}
