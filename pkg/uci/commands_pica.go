package uci

import "github.com/iamruinous/pica-emulator/pkg/geometry"

// Pica-group commands are this emulator's own control surface for
// placing devices and anchors in the shared world; they have no
// equivalent in the Fira Consortium UCI specification. Commands that
// address an entity carry an address-mode byte and the MAC first;
// SET_DEVICE_POSITION carries the pose alone. A pose is six
// little-endian int16 fields: x, y, z in millimeters, followed by
// yaw, pitch, roll in hundredths of a degree.

func encodePoseInto(p []byte, pose geometry.Pose) []byte {
	p = putI16LE(p, pose.X)
	p = putI16LE(p, pose.Y)
	p = putI16LE(p, pose.Z)
	e := pose.Quat.Euler()
	p = putI16LE(p, int16(e.Yaw*100))
	p = putI16LE(p, int16(e.Pitch*100))
	p = putI16LE(p, int16(e.Roll*100))
	return p
}

const poseWireLen = 12

func decodePoseFrom(b []byte) (geometry.Pose, []byte, error) {
	if len(b) < poseWireLen {
		return geometry.Pose{}, nil, ErrShortPayload
	}
	x := getI16LE(b[0:2])
	y := getI16LE(b[2:4])
	z := getI16LE(b[4:6])
	yaw := float64(getI16LE(b[6:8])) / 100
	pitch := float64(getI16LE(b[8:10])) / 100
	roll := float64(getI16LE(b[10:12])) / 100
	pose := geometry.NewFromEuler(x, y, z, geometry.Euler{Yaw: yaw, Pitch: pitch, Roll: roll})
	return pose, b[poseWireLen:], nil
}

type InitDeviceCmd struct {
	Mac  MacAddress
	Pose geometry.Pose
}

func (InitDeviceCmd) GroupID() byte  { return GroupPica }
func (InitDeviceCmd) OpcodeID() byte { return OpcodeInitDevice }
func (InitDeviceCmd) isUCICommand()  {}

type InitDeviceRsp struct {
	Status StatusCode
}

func (r InitDeviceRsp) GroupID() byte  { return GroupPica }
func (r InitDeviceRsp) OpcodeID() byte { return OpcodeInitDevice }
func (r InitDeviceRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupPica, OpcodeInitDevice, []byte{byte(r.Status)})
}

type SetDevicePositionCmd struct {
	Pose geometry.Pose
}

func (SetDevicePositionCmd) GroupID() byte  { return GroupPica }
func (SetDevicePositionCmd) OpcodeID() byte { return OpcodeSetDevicePosition }
func (SetDevicePositionCmd) isUCICommand()  {}

type SetDevicePositionRsp struct {
	Status StatusCode
}

func (r SetDevicePositionRsp) GroupID() byte  { return GroupPica }
func (r SetDevicePositionRsp) OpcodeID() byte { return OpcodeSetDevicePosition }
func (r SetDevicePositionRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupPica, OpcodeSetDevicePosition, []byte{byte(r.Status)})
}

type CreateAnchorCmd struct {
	Mac  MacAddress
	Pose geometry.Pose
}

func (CreateAnchorCmd) GroupID() byte  { return GroupPica }
func (CreateAnchorCmd) OpcodeID() byte { return OpcodeCreateAnchor }
func (CreateAnchorCmd) isUCICommand()  {}

type CreateAnchorRsp struct {
	Status StatusCode
}

func (r CreateAnchorRsp) GroupID() byte  { return GroupPica }
func (r CreateAnchorRsp) OpcodeID() byte { return OpcodeCreateAnchor }
func (r CreateAnchorRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupPica, OpcodeCreateAnchor, []byte{byte(r.Status)})
}

type SetAnchorPositionCmd struct {
	Mac  MacAddress
	Pose geometry.Pose
}

func (SetAnchorPositionCmd) GroupID() byte  { return GroupPica }
func (SetAnchorPositionCmd) OpcodeID() byte { return OpcodeSetAnchorPosition }
func (SetAnchorPositionCmd) isUCICommand()  {}

type SetAnchorPositionRsp struct {
	Status StatusCode
}

func (r SetAnchorPositionRsp) GroupID() byte  { return GroupPica }
func (r SetAnchorPositionRsp) OpcodeID() byte { return OpcodeSetAnchorPosition }
func (r SetAnchorPositionRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupPica, OpcodeSetAnchorPosition, []byte{byte(r.Status)})
}

type DestroyAnchorCmd struct {
	Mac MacAddress
}

func (DestroyAnchorCmd) GroupID() byte  { return GroupPica }
func (DestroyAnchorCmd) OpcodeID() byte { return OpcodeDestroyAnchor }
func (DestroyAnchorCmd) isUCICommand()  {}

type DestroyAnchorRsp struct {
	Status StatusCode
}

func (r DestroyAnchorRsp) GroupID() byte  { return GroupPica }
func (r DestroyAnchorRsp) OpcodeID() byte { return OpcodeDestroyAnchor }
func (r DestroyAnchorRsp) Encode() []byte {
	return frame(MessageTypeResponse, GroupPica, OpcodeDestroyAnchor, []byte{byte(r.Status)})
}

func decodeInitDevice(payload []byte) (Command, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	mac, rest, err := decodeMac(AddressMode(payload[0]), payload[1:])
	if err != nil {
		return nil, err
	}
	pose, _, err := decodePoseFrom(rest)
	if err != nil {
		return nil, err
	}
	return InitDeviceCmd{Mac: mac, Pose: pose}, nil
}

func decodeSetDevicePosition(payload []byte) (Command, error) {
	pose, _, err := decodePoseFrom(payload)
	if err != nil {
		return nil, err
	}
	return SetDevicePositionCmd{Pose: pose}, nil
}

func decodeCreateAnchor(payload []byte) (Command, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	mac, rest, err := decodeMac(AddressMode(payload[0]), payload[1:])
	if err != nil {
		return nil, err
	}
	pose, _, err := decodePoseFrom(rest)
	if err != nil {
		return nil, err
	}
	return CreateAnchorCmd{Mac: mac, Pose: pose}, nil
}

func decodeSetAnchorPosition(payload []byte) (Command, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	mac, rest, err := decodeMac(AddressMode(payload[0]), payload[1:])
	if err != nil {
		return nil, err
	}
	pose, _, err := decodePoseFrom(rest)
	if err != nil {
		return nil, err
	}
	return SetAnchorPositionCmd{Mac: mac, Pose: pose}, nil
}

func decodeDestroyAnchor(payload []byte) (Command, error) {
	if len(payload) < 1 {
		return nil, ErrShortPayload
	}
	mac, _, err := decodeMac(AddressMode(payload[0]), payload[1:])
	if err != nil {
		return nil, err
	}
	return DestroyAnchorCmd{Mac: mac}, nil
}

func init() {
	register(GroupPica, OpcodeInitDevice, decodeInitDevice)
	register(GroupPica, OpcodeSetDevicePosition, decodeSetDevicePosition)
	register(GroupPica, OpcodeCreateAnchor, decodeCreateAnchor)
	register(GroupPica, OpcodeSetAnchorPosition, decodeSetAnchorPosition)
	register(GroupPica, OpcodeDestroyAnchor, decodeDestroyAnchor)
}
