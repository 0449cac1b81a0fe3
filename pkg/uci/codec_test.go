package uci

import (
	"reflect"
	"testing"

	"github.com/iamruinous/pica-emulator/pkg/geometry"
)

func TestParseRoundTripSessionInit(t *testing.T) {
	cmd := SessionInitCmd{SessionID: 7, SessionType: SessionTypeFiraRanging}
	payload := putU32LE(nil, cmd.SessionID)
	payload = append(payload, byte(cmd.SessionType))
	pdu := frame(MessageTypeCommand, GroupSession, OpcodeSessionInit, payload)

	res := Parse(pdu)
	if res.Outcome != ParsedCommand {
		t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
	}
	got, ok := res.Command.(SessionInitCmd)
	if !ok {
		t.Fatalf("expected SessionInitCmd, got %T", res.Command)
	}
	if got != cmd {
		t.Errorf("got %+v, want %+v", got, cmd)
	}
}

func TestParseRoundTripInitDevicePose(t *testing.T) {
	pose := geometry.NewFromEuler(100, -200, 300, geometry.Euler{Yaw: 90, Pitch: 0, Roll: 0})
	mac := NewShortMac(0x12, 0x34)

	var payload []byte
	payload = append(payload, byte(AddressModeShort))
	payload = mac.encodeInto(payload)
	payload = encodePoseInto(payload, pose)
	pdu := frame(MessageTypeCommand, GroupPica, OpcodeInitDevice, payload)

	res := Parse(pdu)
	if res.Outcome != ParsedCommand {
		t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
	}
	got, ok := res.Command.(InitDeviceCmd)
	if !ok {
		t.Fatalf("expected InitDeviceCmd, got %T", res.Command)
	}
	if got.Mac != mac {
		t.Errorf("mac mismatch: got %v want %v", got.Mac, mac)
	}
	if got.Pose.X != pose.X || got.Pose.Y != pose.Y || got.Pose.Z != pose.Z {
		t.Errorf("pose position mismatch: got %+v want %+v", got.Pose, pose)
	}
}

func TestParseUnknownGroup(t *testing.T) {
	pdu := frame(MessageTypeCommand, 0x9, 0x00, nil)
	res := Parse(pdu)
	if res.Outcome != ParsedError {
		t.Fatalf("expected ParsedError, got %v", res.Outcome)
	}
	h, err := parseHeader(res.ErrorFrame)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.MessageType != MessageTypeResponse {
		t.Errorf("expected response, got %v", h.MessageType)
	}
	if StatusCode(res.ErrorFrame[HeaderSize]) != StatusUnknownGID {
		t.Errorf("expected UNKNOWN_GID, got %v", StatusCode(res.ErrorFrame[HeaderSize]))
	}
}

func TestParseUnknownOpcode(t *testing.T) {
	pdu := frame(MessageTypeCommand, GroupCore, 0x3F, nil)
	res := Parse(pdu)
	if res.Outcome != ParsedError {
		t.Fatalf("expected ParsedError, got %v", res.Outcome)
	}
	if StatusCode(res.ErrorFrame[HeaderSize]) != StatusUnknownOID {
		t.Errorf("expected UNKNOWN_OID, got %v", StatusCode(res.ErrorFrame[HeaderSize]))
	}
}

func TestParseSkipsResponsesAndNotifications(t *testing.T) {
	rsp := frame(MessageTypeResponse, GroupCore, OpcodeGetDeviceInfo, []byte{0})
	if res := Parse(rsp); res.Outcome != ParsedSkip {
		t.Errorf("expected ParsedSkip for inbound response, got %v", res.Outcome)
	}
	ntf := frame(MessageTypeNotification, GroupCore, OpcodeDeviceStatusNtf, []byte{byte(DeviceStateReady)})
	if res := Parse(ntf); res.Outcome != ParsedSkip {
		t.Errorf("expected ParsedSkip for inbound notification, got %v", res.Outcome)
	}
}

func TestParseMalformedPayloadYieldsUnknownOID(t *testing.T) {
	// A truncated SessionInit payload fails decoding on a recognized
	// opcode; malformed payload isn't differentiated from an unknown
	// opcode and also answers UNKNOWN_OID.
	pdu := frame(MessageTypeCommand, GroupSession, OpcodeSessionInit, []byte{0x01})
	res := Parse(pdu)
	if res.Outcome != ParsedError {
		t.Fatalf("expected ParsedError, got %v", res.Outcome)
	}
	if StatusCode(res.ErrorFrame[HeaderSize]) != StatusUnknownOID {
		t.Errorf("expected UNKNOWN_OID, got %v", StatusCode(res.ErrorFrame[HeaderSize]))
	}
}

func TestSessionUpdateControllerMulticastListRoundTrip(t *testing.T) {
	cmd := SessionUpdateControllerMulticastListCmd{
		SessionID: 42,
		Action:    MulticastActionAdd,
		Controlees: []MacAddress{
			NewShortMac(0x01, 0x02),
			NewShortMac(0x03, 0x04),
		},
	}
	payload := putU32LE(nil, cmd.SessionID)
	payload = append(payload, byte(cmd.Action), byte(len(cmd.Controlees)))
	for _, c := range cmd.Controlees {
		payload = c.encodeInto(payload)
	}
	pdu := frame(MessageTypeCommand, GroupSession, OpcodeSessionUpdateControllerMulticastList, payload)

	res := Parse(pdu)
	if res.Outcome != ParsedCommand {
		t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
	}
	got, ok := res.Command.(SessionUpdateControllerMulticastListCmd)
	if !ok {
		t.Fatalf("expected SessionUpdateControllerMulticastListCmd, got %T", res.Command)
	}
	if !reflect.DeepEqual(got, cmd) {
		t.Errorf("got %+v, want %+v", got, cmd)
	}
}

func TestCoreGroupRoundTrips(t *testing.T) {
	t.Run("DeviceReset", func(t *testing.T) {
		cmd := DeviceResetCmd{ResetConfig: 1}
		pdu := frame(MessageTypeCommand, GroupCore, OpcodeDeviceReset, []byte{cmd.ResetConfig})
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(DeviceResetCmd)
		if !ok {
			t.Fatalf("expected DeviceResetCmd, got %T", res.Command)
		}
		if got != cmd {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})

	t.Run("GetDeviceInfo", func(t *testing.T) {
		pdu := frame(MessageTypeCommand, GroupCore, OpcodeGetDeviceInfo, nil)
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		if _, ok := res.Command.(GetDeviceInfoCmd); !ok {
			t.Fatalf("expected GetDeviceInfoCmd, got %T", res.Command)
		}
	})

	t.Run("SetConfig", func(t *testing.T) {
		cmd := SetConfigCmd{Params: []ConfigParam{
			{ID: ConfigID(0x01), Value: []byte{0xAA}},
			{ID: ConfigID(0x02), Value: []byte{0x01, 0x02}},
		}}
		payload := []byte{byte(len(cmd.Params))}
		for _, p := range cmd.Params {
			payload = append(payload, byte(p.ID), byte(len(p.Value)))
			payload = append(payload, p.Value...)
		}
		pdu := frame(MessageTypeCommand, GroupCore, OpcodeSetConfig, payload)

		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(SetConfigCmd)
		if !ok {
			t.Fatalf("expected SetConfigCmd, got %T", res.Command)
		}
		if !reflect.DeepEqual(got, cmd) {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})

	t.Run("GetConfig", func(t *testing.T) {
		cmd := GetConfigCmd{IDs: []ConfigID{ConfigID(0x01), ConfigID(0x03)}}
		payload := []byte{byte(len(cmd.IDs))}
		for _, id := range cmd.IDs {
			payload = append(payload, byte(id))
		}
		pdu := frame(MessageTypeCommand, GroupCore, OpcodeGetConfig, payload)

		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(GetConfigCmd)
		if !ok {
			t.Fatalf("expected GetConfigCmd, got %T", res.Command)
		}
		if !reflect.DeepEqual(got, cmd) {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})
}

func TestRangingGroupRoundTrips(t *testing.T) {
	t.Run("RangeStart", func(t *testing.T) {
		cmd := RangeStartCmd{SessionID: 99}
		pdu := frame(MessageTypeCommand, GroupRanging, OpcodeRangeStart, putU32LE(nil, cmd.SessionID))
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(RangeStartCmd)
		if !ok {
			t.Fatalf("expected RangeStartCmd, got %T", res.Command)
		}
		if got != cmd {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})

	t.Run("RangeStop", func(t *testing.T) {
		cmd := RangeStopCmd{SessionID: 99}
		pdu := frame(MessageTypeCommand, GroupRanging, OpcodeRangeStop, putU32LE(nil, cmd.SessionID))
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(RangeStopCmd)
		if !ok {
			t.Fatalf("expected RangeStopCmd, got %T", res.Command)
		}
		if got != cmd {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})

	t.Run("GetRangingCount", func(t *testing.T) {
		cmd := RangeGetRangingCountCmd{SessionID: 7}
		pdu := frame(MessageTypeCommand, GroupRanging, OpcodeRangeGetRangingCount, putU32LE(nil, cmd.SessionID))
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(RangeGetRangingCountCmd)
		if !ok {
			t.Fatalf("expected RangeGetRangingCountCmd, got %T", res.Command)
		}
		if got != cmd {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})
}

func TestAndroidGroupRoundTrips(t *testing.T) {
	t.Run("SetCountryCode", func(t *testing.T) {
		cmd := SetCountryCodeCmd{CountryCode: [2]byte{'U', 'S'}}
		pdu := frame(MessageTypeCommand, GroupAndroid, OpcodeSetCountryCode, cmd.CountryCode[:])
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(SetCountryCodeCmd)
		if !ok {
			t.Fatalf("expected SetCountryCodeCmd, got %T", res.Command)
		}
		if got != cmd {
			t.Errorf("got %+v, want %+v", got, cmd)
		}
	})

	t.Run("GetPowerStats", func(t *testing.T) {
		pdu := frame(MessageTypeCommand, GroupAndroid, OpcodeGetPowerStats, nil)
		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		if _, ok := res.Command.(GetPowerStatsCmd); !ok {
			t.Fatalf("expected GetPowerStatsCmd, got %T", res.Command)
		}
	})
}

func TestPicaGroupRoundTrips(t *testing.T) {
	pose := geometry.NewFromEuler(10, -20, 30, geometry.Euler{Yaw: 45, Pitch: 0, Roll: 0})
	mac := NewShortMac(0xAB, 0xCD)

	t.Run("SetDevicePosition", func(t *testing.T) {
		payload := encodePoseInto(nil, pose)
		pdu := frame(MessageTypeCommand, GroupPica, OpcodeSetDevicePosition, payload)

		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(SetDevicePositionCmd)
		if !ok {
			t.Fatalf("expected SetDevicePositionCmd, got %T", res.Command)
		}
		if got.Pose.X != pose.X || got.Pose.Y != pose.Y || got.Pose.Z != pose.Z {
			t.Errorf("pose position mismatch: got %+v want %+v", got.Pose, pose)
		}
	})

	t.Run("CreateAnchor", func(t *testing.T) {
		var payload []byte
		payload = append(payload, byte(AddressModeShort))
		payload = mac.encodeInto(payload)
		payload = encodePoseInto(payload, pose)
		pdu := frame(MessageTypeCommand, GroupPica, OpcodeCreateAnchor, payload)

		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(CreateAnchorCmd)
		if !ok {
			t.Fatalf("expected CreateAnchorCmd, got %T", res.Command)
		}
		if got.Mac != mac {
			t.Errorf("mac mismatch: got %v want %v", got.Mac, mac)
		}
		if got.Pose.X != pose.X || got.Pose.Y != pose.Y || got.Pose.Z != pose.Z {
			t.Errorf("pose position mismatch: got %+v want %+v", got.Pose, pose)
		}
	})

	t.Run("SetAnchorPosition", func(t *testing.T) {
		var payload []byte
		payload = append(payload, byte(AddressModeShort))
		payload = mac.encodeInto(payload)
		payload = encodePoseInto(payload, pose)
		pdu := frame(MessageTypeCommand, GroupPica, OpcodeSetAnchorPosition, payload)

		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(SetAnchorPositionCmd)
		if !ok {
			t.Fatalf("expected SetAnchorPositionCmd, got %T", res.Command)
		}
		if got.Mac != mac {
			t.Errorf("mac mismatch: got %v want %v", got.Mac, mac)
		}
		if got.Pose.X != pose.X || got.Pose.Y != pose.Y || got.Pose.Z != pose.Z {
			t.Errorf("pose position mismatch: got %+v want %+v", got.Pose, pose)
		}
	})

	t.Run("DestroyAnchor", func(t *testing.T) {
		var payload []byte
		payload = append(payload, byte(AddressModeShort))
		payload = mac.encodeInto(payload)
		pdu := frame(MessageTypeCommand, GroupPica, OpcodeDestroyAnchor, payload)

		res := Parse(pdu)
		if res.Outcome != ParsedCommand {
			t.Fatalf("expected ParsedCommand, got %v", res.Outcome)
		}
		got, ok := res.Command.(DestroyAnchorCmd)
		if !ok {
			t.Fatalf("expected DestroyAnchorCmd, got %T", res.Command)
		}
		if got.Mac != mac {
			t.Errorf("mac mismatch: got %v want %v", got.Mac, mac)
		}
	})
}

func TestResponseEncodeDecodeStatusByte(t *testing.T) {
	r := SessionInitRsp{Status: StatusMaxSessionsExceeded}
	b := r.Encode()
	h, err := parseHeader(b)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.MessageType != MessageTypeResponse || h.GroupID != GroupSession || h.OpcodeID != OpcodeSessionInit {
		t.Errorf("unexpected header: %+v", h)
	}
	if StatusCode(b[HeaderSize]) != StatusMaxSessionsExceeded {
		t.Errorf("status byte mismatch")
	}
}
