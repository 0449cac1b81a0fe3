package uci

// ConfigParam is one TLV entry of a SET_CONFIG/GET_CONFIG exchange.
type ConfigParam struct {
	ID    ConfigID
	Value []byte
}

// DeviceResetCmd resets the device to its post-reset Ready state.
type DeviceResetCmd struct {
	ResetConfig byte
}

func (DeviceResetCmd) GroupID() byte    { return GroupCore }
func (DeviceResetCmd) OpcodeID() byte   { return OpcodeDeviceReset }
func (DeviceResetCmd) isUCICommand()    {}

type DeviceResetRsp struct {
	Status StatusCode
}

func (r DeviceResetRsp) GroupID() byte  { return GroupCore }
func (r DeviceResetRsp) OpcodeID() byte { return OpcodeDeviceReset }
func (r DeviceResetRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupCore, OpcodeDeviceReset, []byte{byte(r.Status)})
}

// GetDeviceInfoCmd carries no parameters.
type GetDeviceInfoCmd struct{}

func (GetDeviceInfoCmd) GroupID() byte  { return GroupCore }
func (GetDeviceInfoCmd) OpcodeID() byte { return OpcodeGetDeviceInfo }
func (GetDeviceInfoCmd) isUCICommand()  {}

type GetDeviceInfoRsp struct {
	Status          StatusCode
	UciVersion      uint16
	MacVersion      uint16
	PhyVersion      uint16
	UciTestVersion  uint16
	VendorSpecInfo  []byte
}

func (r GetDeviceInfoRsp) GroupID() byte  { return GroupCore }
func (r GetDeviceInfoRsp) OpcodeID() byte { return OpcodeGetDeviceInfo }
func (r GetDeviceInfoRsp) Encode() []byte {
	p := []byte{byte(r.Status)}
	p = putU16LE(p, r.UciVersion)
	p = putU16LE(p, r.MacVersion)
	p = putU16LE(p, r.PhyVersion)
	p = putU16LE(p, r.UciTestVersion)
	p = append(p, byte(len(r.VendorSpecInfo)))
	p = append(p, r.VendorSpecInfo...)
	return frame(MessageTypeResponse, GroupCore, OpcodeGetDeviceInfo, p)
}

// GetCapsInfoCmd carries no parameters.
type GetCapsInfoCmd struct{}

func (GetCapsInfoCmd) GroupID() byte  { return GroupCore }
func (GetCapsInfoCmd) OpcodeID() byte { return OpcodeGetCapsInfo }
func (GetCapsInfoCmd) isUCICommand()  {}

// GetCapsInfoRsp reports capability TLVs opaquely; this emulator does
// not interpret capability parameters, only round-trips a fixed set.
type GetCapsInfoRsp struct {
	Status StatusCode
	Caps   []ConfigParam
}

func (r GetCapsInfoRsp) GroupID() byte  { return GroupCore }
func (r GetCapsInfoRsp) OpcodeID() byte { return OpcodeGetCapsInfo }
func (r GetCapsInfoRsp) Encode() []byte {
	p := []byte{byte(r.Status), byte(len(r.Caps))}
	for _, c := range r.Caps {
		p = append(p, byte(c.ID), byte(len(c.Value)))
		p = append(p, c.Value...)
	}
	return frame(MessageTypeResponse, GroupCore, OpcodeGetCapsInfo, p)
}

// SetConfigCmd carries one or more device-level config TLVs.
type SetConfigCmd struct {
	Params []ConfigParam
}

func (SetConfigCmd) GroupID() byte  { return GroupCore }
func (SetConfigCmd) OpcodeID() byte { return OpcodeSetConfig }
func (SetConfigCmd) isUCICommand()  {}

type SetConfigRsp struct {
	Status        StatusCode
	InvalidParams []ConfigID
}

func (r SetConfigRsp) GroupID() byte  { return GroupCore }
func (r SetConfigRsp) OpcodeID() byte { return OpcodeSetConfig }
func (r SetConfigRsp) Encode() []byte {
	p := []byte{byte(r.Status), byte(len(r.InvalidParams))}
	for _, id := range r.InvalidParams {
		p = append(p, byte(id))
	}
	return frame(MessageTypeResponse, GroupCore, OpcodeSetConfig, p)
}

// GetConfigCmd requests the current value of the named device-level
// config parameters.
type GetConfigCmd struct {
	IDs []ConfigID
}

func (GetConfigCmd) GroupID() byte  { return GroupCore }
func (GetConfigCmd) OpcodeID() byte { return OpcodeGetConfig }
func (GetConfigCmd) isUCICommand()  {}

type GetConfigRsp struct {
	Status StatusCode
	Params []ConfigParam
}

func (r GetConfigRsp) GroupID() byte  { return GroupCore }
func (r GetConfigRsp) OpcodeID() byte { return OpcodeGetConfig }
func (r GetConfigRsp) Encode() []byte {
	p := []byte{byte(r.Status), byte(len(r.Params))}
	for _, c := range r.Params {
		p = append(p, byte(c.ID), byte(len(c.Value)))
		p = append(p, c.Value...)
	}
	return frame(MessageTypeResponse, GroupCore, OpcodeGetConfig, p)
}

// DeviceStatusNtf announces a device-level state transition. Emitted on
// connect (Ready) and whenever the emulator flips device state.
type DeviceStatusNtf struct {
	State DeviceState
}

func (n DeviceStatusNtf) GroupID() byte  { return GroupCore }
func (n DeviceStatusNtf) OpcodeID() byte { return OpcodeDeviceStatusNtf }
func (n DeviceStatusNtf) Encode() []byte {
	return frame(MessageTypeNotification, GroupCore, OpcodeDeviceStatusNtf, []byte{byte(n.State)})
}

func decodeDeviceReset(payload []byte) (Command, error) {
	var rc byte
	if len(payload) > 0 {
		rc = payload[0]
	}
	return DeviceResetCmd{ResetConfig: rc}, nil
}

func decodeGetDeviceInfo(payload []byte) (Command, error) {
	return GetDeviceInfoCmd{}, nil
}

func decodeGetCapsInfo(payload []byte) (Command, error) {
	return GetCapsInfoCmd{}, nil
}

func decodeSetConfig(payload []byte) (Command, error) {
	params, err := decodeConfigParams(payload)
	if err != nil {
		return nil, err
	}
	return SetConfigCmd{Params: params}, nil
}

func decodeGetConfig(payload []byte) (Command, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	n := int(payload[0])
	rest := payload[1:]
	if len(rest) < n {
		return nil, ErrShortPayload
	}
	ids := make([]ConfigID, n)
	for i := 0; i < n; i++ {
		ids[i] = ConfigID(rest[i])
	}
	return GetConfigCmd{IDs: ids}, nil
}

func decodeConfigParams(payload []byte) ([]ConfigParam, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	n := int(payload[0])
	rest := payload[1:]
	params := make([]ConfigParam, 0, n)
	for i := 0; i < n; i++ {
		if len(rest) < 2 {
			return nil, ErrShortPayload
		}
		id := ConfigID(rest[0])
		l := int(rest[1])
		rest = rest[2:]
		if len(rest) < l {
			return nil, ErrShortPayload
		}
		params = append(params, ConfigParam{ID: id, Value: append([]byte(nil), rest[:l]...)})
		rest = rest[l:]
	}
	return params, nil
}

func init() {
	register(GroupCore, OpcodeDeviceReset, decodeDeviceReset)
	register(GroupCore, OpcodeGetDeviceInfo, decodeGetDeviceInfo)
	register(GroupCore, OpcodeGetCapsInfo, decodeGetCapsInfo)
	register(GroupCore, OpcodeSetConfig, decodeSetConfig)
	register(GroupCore, OpcodeGetConfig, decodeGetConfig)
}
