package uci

// AppConfigParam is one TLV entry of a SESSION_SET/GET_APP_CONFIG
// exchange.
type AppConfigParam struct {
	ID    AppConfigID
	Value []byte
}

type SessionInitCmd struct {
	SessionID   uint32
	SessionType SessionType
}

func (SessionInitCmd) GroupID() byte  { return GroupSession }
func (SessionInitCmd) OpcodeID() byte { return OpcodeSessionInit }
func (SessionInitCmd) isUCICommand()  {}

type SessionInitRsp struct {
	Status StatusCode
}

func (r SessionInitRsp) GroupID() byte  { return GroupSession }
func (r SessionInitRsp) OpcodeID() byte { return OpcodeSessionInit }
func (r SessionInitRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionInit, []byte{byte(r.Status)})
}

type SessionDeinitCmd struct {
	SessionID uint32
}

func (SessionDeinitCmd) GroupID() byte  { return GroupSession }
func (SessionDeinitCmd) OpcodeID() byte { return OpcodeSessionDeinit }
func (SessionDeinitCmd) isUCICommand()  {}

type SessionDeinitRsp struct {
	Status StatusCode
}

func (r SessionDeinitRsp) GroupID() byte  { return GroupSession }
func (r SessionDeinitRsp) OpcodeID() byte { return OpcodeSessionDeinit }
func (r SessionDeinitRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionDeinit, []byte{byte(r.Status)})
}

// SessionStatusNtf announces a session lifecycle transition.
type SessionStatusNtf struct {
	SessionID uint32
	State     SessionState
	Reason    ReasonCode
}

func (n SessionStatusNtf) GroupID() byte  { return GroupSession }
func (n SessionStatusNtf) OpcodeID() byte { return OpcodeSessionStatusNtf }
func (n SessionStatusNtf) Encode() []byte {
	p := putU32LE(nil, n.SessionID)
	p = append(p, byte(n.State), byte(n.Reason))
	return frame(MessageTypeNotification, GroupSession, OpcodeSessionStatusNtf, p)
}

type SessionSetAppConfigCmd struct {
	SessionID uint32
	Params    []AppConfigParam
}

func (SessionSetAppConfigCmd) GroupID() byte  { return GroupSession }
func (SessionSetAppConfigCmd) OpcodeID() byte { return OpcodeSessionSetAppConfig }
func (SessionSetAppConfigCmd) isUCICommand()  {}

type SessionSetAppConfigRsp struct {
	Status        StatusCode
	InvalidParams []AppConfigID
}

func (r SessionSetAppConfigRsp) GroupID() byte  { return GroupSession }
func (r SessionSetAppConfigRsp) OpcodeID() byte { return OpcodeSessionSetAppConfig }
func (r SessionSetAppConfigRsp) Encode() []byte {
	p := []byte{byte(r.Status), byte(len(r.InvalidParams))}
	for _, id := range r.InvalidParams {
		p = append(p, byte(id))
	}
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionSetAppConfig, p)
}

type SessionGetAppConfigCmd struct {
	SessionID uint32
	IDs       []AppConfigID
}

func (SessionGetAppConfigCmd) GroupID() byte  { return GroupSession }
func (SessionGetAppConfigCmd) OpcodeID() byte { return OpcodeSessionGetAppConfig }
func (SessionGetAppConfigCmd) isUCICommand()  {}

// SessionGetAppConfigRsp is returned with an empty Params list for any
// requested id this emulator does not track; the command still answers
// OK rather than failing, treating this operation as a permissive
// stub.
type SessionGetAppConfigRsp struct {
	Status StatusCode
	Params []AppConfigParam
}

func (r SessionGetAppConfigRsp) GroupID() byte  { return GroupSession }
func (r SessionGetAppConfigRsp) OpcodeID() byte { return OpcodeSessionGetAppConfig }
func (r SessionGetAppConfigRsp) Encode() []byte {
	p := []byte{byte(r.Status), byte(len(r.Params))}
	for _, c := range r.Params {
		p = append(p, byte(c.ID), byte(len(c.Value)))
		p = append(p, c.Value...)
	}
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionGetAppConfig, p)
}

type SessionGetCountCmd struct{}

func (SessionGetCountCmd) GroupID() byte  { return GroupSession }
func (SessionGetCountCmd) OpcodeID() byte { return OpcodeSessionGetCount }
func (SessionGetCountCmd) isUCICommand()  {}

type SessionGetCountRsp struct {
	Status StatusCode
	Count  byte
}

func (r SessionGetCountRsp) GroupID() byte  { return GroupSession }
func (r SessionGetCountRsp) OpcodeID() byte { return OpcodeSessionGetCount }
func (r SessionGetCountRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionGetCount, []byte{byte(r.Status), r.Count})
}

type SessionGetStateCmd struct {
	SessionID uint32
}

func (SessionGetStateCmd) GroupID() byte  { return GroupSession }
func (SessionGetStateCmd) OpcodeID() byte { return OpcodeSessionGetState }
func (SessionGetStateCmd) isUCICommand()  {}

type SessionGetStateRsp struct {
	Status StatusCode
	State  SessionState
}

func (r SessionGetStateRsp) GroupID() byte  { return GroupSession }
func (r SessionGetStateRsp) OpcodeID() byte { return OpcodeSessionGetState }
func (r SessionGetStateRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionGetState, []byte{byte(r.Status), byte(r.State)})
}

// SessionUpdateControllerMulticastListCmd adds or removes controlees.
// This emulator acknowledges the command with OK for a known session;
// the controlee list is not stored and does not affect ranging fan-out.
type SessionUpdateControllerMulticastListCmd struct {
	SessionID  uint32
	Action     MulticastAction
	Controlees []MacAddress
}

func (SessionUpdateControllerMulticastListCmd) GroupID() byte {
	return GroupSession
}
func (SessionUpdateControllerMulticastListCmd) OpcodeID() byte {
	return OpcodeSessionUpdateControllerMulticastList
}
func (SessionUpdateControllerMulticastListCmd) isUCICommand() {}

type SessionUpdateControllerMulticastListRsp struct {
	Status StatusCode
}

func (r SessionUpdateControllerMulticastListRsp) GroupID() byte {
	return GroupSession
}
func (r SessionUpdateControllerMulticastListRsp) OpcodeID() byte {
	return OpcodeSessionUpdateControllerMulticastList
}
func (r SessionUpdateControllerMulticastListRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupSession, OpcodeSessionUpdateControllerMulticastList, []byte{byte(r.Status)})
}

func decodeSessionInit(payload []byte) (Command, error) {
	if len(payload) < 5 {
		return nil, ErrShortPayload
	}
	return SessionInitCmd{
		SessionID:   getU32LE(payload),
		SessionType: SessionType(payload[4]),
	}, nil
}

func decodeSessionDeinit(payload []byte) (Command, error) {
	if len(payload) < 4 {
		return nil, ErrShortPayload
	}
	return SessionDeinitCmd{SessionID: getU32LE(payload)}, nil
}

func decodeSessionSetAppConfig(payload []byte) (Command, error) {
	if len(payload) < 5 {
		return nil, ErrShortPayload
	}
	sid := getU32LE(payload)
	params, err := decodeAppConfigParams(payload[4:])
	if err != nil {
		return nil, err
	}
	return SessionSetAppConfigCmd{SessionID: sid, Params: params}, nil
}

func decodeSessionGetAppConfig(payload []byte) (Command, error) {
	if len(payload) < 5 {
		return nil, ErrShortPayload
	}
	sid := getU32LE(payload)
	rest := payload[4:]
	n := int(rest[0])
	rest = rest[1:]
	if len(rest) < n {
		return nil, ErrShortPayload
	}
	ids := make([]AppConfigID, n)
	for i := 0; i < n; i++ {
		ids[i] = AppConfigID(rest[i])
	}
	return SessionGetAppConfigCmd{SessionID: sid, IDs: ids}, nil
}

func decodeSessionGetCount(payload []byte) (Command, error) {
	return SessionGetCountCmd{}, nil
}

func decodeSessionGetState(payload []byte) (Command, error) {
	if len(payload) < 4 {
		return nil, ErrShortPayload
	}
	return SessionGetStateCmd{SessionID: getU32LE(payload)}, nil
}

func decodeSessionUpdateControllerMulticastList(payload []byte) (Command, error) {
	if len(payload) < 6 {
		return nil, ErrShortPayload
	}
	sid := getU32LE(payload)
	action := MulticastAction(payload[4])
	n := int(payload[5])
	rest := payload[6:]
	controlees := make([]MacAddress, 0, n)
	for i := 0; i < n; i++ {
		mac, tail, err := decodeMac(AddressModeShort, rest)
		if err != nil {
			return nil, err
		}
		controlees = append(controlees, mac)
		rest = tail
	}
	return SessionUpdateControllerMulticastListCmd{SessionID: sid, Action: action, Controlees: controlees}, nil
}

func decodeAppConfigParams(payload []byte) ([]AppConfigParam, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	n := int(payload[0])
	rest := payload[1:]
	params := make([]AppConfigParam, 0, n)
	for i := 0; i < n; i++ {
		if len(rest) < 2 {
			return nil, ErrShortPayload
		}
		id := AppConfigID(rest[0])
		l := int(rest[1])
		rest = rest[2:]
		if len(rest) < l {
			return nil, ErrShortPayload
		}
		params = append(params, AppConfigParam{ID: id, Value: append([]byte(nil), rest[:l]...)})
		rest = rest[l:]
	}
	return params, nil
}

func init() {
	register(GroupSession, OpcodeSessionInit, decodeSessionInit)
	register(GroupSession, OpcodeSessionDeinit, decodeSessionDeinit)
	register(GroupSession, OpcodeSessionSetAppConfig, decodeSessionSetAppConfig)
	register(GroupSession, OpcodeSessionGetAppConfig, decodeSessionGetAppConfig)
	register(GroupSession, OpcodeSessionGetCount, decodeSessionGetCount)
	register(GroupSession, OpcodeSessionGetState, decodeSessionGetState)
	register(GroupSession, OpcodeSessionUpdateControllerMulticastList, decodeSessionUpdateControllerMulticastList)
}
