package uci

type RangeStartCmd struct {
	SessionID uint32
}

func (RangeStartCmd) GroupID() byte  { return GroupRanging }
func (RangeStartCmd) OpcodeID() byte { return OpcodeRangeStart }
func (RangeStartCmd) isUCICommand()  {}

type RangeStartRsp struct {
	Status StatusCode
}

func (r RangeStartRsp) GroupID() byte  { return GroupRanging }
func (r RangeStartRsp) OpcodeID() byte { return OpcodeRangeStart }
func (r RangeStartRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupRanging, OpcodeRangeStart, []byte{byte(r.Status)})
}

type RangeStopCmd struct {
	SessionID uint32
}

func (RangeStopCmd) GroupID() byte  { return GroupRanging }
func (RangeStopCmd) OpcodeID() byte { return OpcodeRangeStop }
func (RangeStopCmd) isUCICommand()  {}

type RangeStopRsp struct {
	Status StatusCode
}

func (r RangeStopRsp) GroupID() byte  { return GroupRanging }
func (r RangeStopRsp) OpcodeID() byte { return OpcodeRangeStop }
func (r RangeStopRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupRanging, OpcodeRangeStop, []byte{byte(r.Status)})
}

type RangeGetRangingCountCmd struct {
	SessionID uint32
}

func (RangeGetRangingCountCmd) GroupID() byte  { return GroupRanging }
func (RangeGetRangingCountCmd) OpcodeID() byte { return OpcodeRangeGetRangingCount }
func (RangeGetRangingCountCmd) isUCICommand()  {}

type RangeGetRangingCountRsp struct {
	Status StatusCode
	Count  uint32
}

func (r RangeGetRangingCountRsp) GroupID() byte  { return GroupRanging }
func (r RangeGetRangingCountRsp) OpcodeID() byte { return OpcodeRangeGetRangingCount }
func (r RangeGetRangingCountRsp) Encode() []byte {
	p := []byte{byte(r.Status)}
	p = putU32LE(p, r.Count)
	return frame(MessageTypeResponse, GroupRanging, OpcodeRangeGetRangingCount, p)
}

// ShortMacMeasurement is one neighbor's ranging result within a
// ShortMacTwoWayRangeDataNtf, derived from Pose.Relative between the
// ranging device and the neighbor.
type ShortMacMeasurement struct {
	Mac             MacAddress
	Status          StatusCode
	NLoS            byte
	Distance        uint16
	AoAAzimuth      int16
	AoAAzimuthFOM   byte
	AoAElevation    int8
	AoAElevationFOM byte
	SlotIndex       byte
}

// ShortMacTwoWayRangeDataNtf reports the ranging round result against
// every other session participant visible to the reporting device.
type ShortMacTwoWayRangeDataNtf struct {
	SessionID           uint32
	SeqNum              uint32
	RcrIndicator        byte
	CurrRangingInterval uint32
	Measurements        []ShortMacMeasurement
}

func (n ShortMacTwoWayRangeDataNtf) GroupID() byte { return GroupRanging }
func (n ShortMacTwoWayRangeDataNtf) OpcodeID() byte {
	return OpcodeShortMacTwoWayRangeDataNtf
}
func (n ShortMacTwoWayRangeDataNtf) Encode() []byte {
	p := putU32LE(nil, n.SessionID)
	p = putU32LE(p, n.SeqNum)
	p = append(p, n.RcrIndicator)
	p = putU32LE(p, n.CurrRangingInterval)
	p = append(p, byte(len(n.Measurements)))
	for _, m := range n.Measurements {
		p = append(p, m.Mac.Short[0], m.Mac.Short[1])
		p = append(p, byte(m.Status), m.NLoS)
		p = putU16LE(p, m.Distance)
		p = putI16LE(p, m.AoAAzimuth)
		p = append(p, m.AoAAzimuthFOM)
		p = append(p, byte(m.AoAElevation))
		p = append(p, m.AoAElevationFOM)
		p = append(p, m.SlotIndex)
	}
	return frame(MessageTypeNotification, GroupRanging, OpcodeShortMacTwoWayRangeDataNtf, p)
}

// ExtendedMacMeasurement exists for wire completeness only; this
// emulator never produces it. A RANGE_START against a session
// configured for extended MAC addressing answers StatusNotImplemented
// instead of attempting to build one, since the 8-byte measurement
// layout is never actually exercised.
type ExtendedMacMeasurement struct {
	Mac      [8]byte
	Status   StatusCode
	Distance uint16
}

func decodeRangeStart(payload []byte) (Command, error) {
	if len(payload) < 4 {
		return nil, ErrShortPayload
	}
	return RangeStartCmd{SessionID: getU32LE(payload)}, nil
}

func decodeRangeStop(payload []byte) (Command, error) {
	if len(payload) < 4 {
		return nil, ErrShortPayload
	}
	return RangeStopCmd{SessionID: getU32LE(payload)}, nil
}

func decodeRangeGetRangingCount(payload []byte) (Command, error) {
	if len(payload) < 4 {
		return nil, ErrShortPayload
	}
	return RangeGetRangingCountCmd{SessionID: getU32LE(payload)}, nil
}

func init() {
	register(GroupRanging, OpcodeRangeStart, decodeRangeStart)
	register(GroupRanging, OpcodeRangeStop, decodeRangeStop)
	register(GroupRanging, OpcodeRangeGetRangingCount, decodeRangeGetRangingCount)
}
