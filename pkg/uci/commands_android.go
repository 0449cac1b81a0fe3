package uci

type SetCountryCodeCmd struct {
	CountryCode [2]byte
}

func (SetCountryCodeCmd) GroupID() byte  { return GroupAndroid }
func (SetCountryCodeCmd) OpcodeID() byte { return OpcodeSetCountryCode }
func (SetCountryCodeCmd) isUCICommand()  {}

type SetCountryCodeRsp struct {
	Status StatusCode
}

func (r SetCountryCodeRsp) GroupID() byte  { return GroupAndroid }
func (r SetCountryCodeRsp) OpcodeID() byte { return OpcodeSetCountryCode }
func (r SetCountryCodeRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupAndroid, OpcodeSetCountryCode, []byte{byte(r.Status)})
}

type GetPowerStatsCmd struct{}

func (GetPowerStatsCmd) GroupID() byte  { return GroupAndroid }
func (GetPowerStatsCmd) OpcodeID() byte { return OpcodeGetPowerStats }
func (GetPowerStatsCmd) isUCICommand()  {}

// GetPowerStatsRsp always reports zeroed counters; this emulator does
// not model radio power draw.
type GetPowerStatsRsp struct {
	Status         StatusCode
	IdleTimeMs     uint32
	TxTimeMs       uint32
	RxTimeMs       uint32
	TotalWakeCount uint32
}

func (r GetPowerStatsRsp) GroupID() byte  { return GroupAndroid }
func (r GetPowerStatsRsp) OpcodeID() byte { return OpcodeGetPowerStats }
func (r GetPowerStatsRsp) Encode() []byte {
	p := []byte{byte(r.Status)}
	p = putU32LE(p, r.IdleTimeMs)
	p = putU32LE(p, r.TxTimeMs)
	p = putU32LE(p, r.RxTimeMs)
	p = putU32LE(p, r.TotalWakeCount)
	return frame(MessageTypeResponse, GroupAndroid, OpcodeGetPowerStats, p)
}

func decodeSetCountryCode(payload []byte) (Command, error) {
	if len(payload) < 2 {
		return nil, ErrShortPayload
	}
	return SetCountryCodeCmd{CountryCode: [2]byte{payload[0], payload[1]}}, nil
}

func decodeGetPowerStats(payload []byte) (Command, error) {
	return GetPowerStatsCmd{}, nil
}

func init() {
	register(GroupAndroid, OpcodeSetCountryCode, decodeSetCountryCode)
	register(GroupAndroid, OpcodeGetPowerStats, decodeGetPowerStats)
}
