package uci

// Group ids. 0-2 follow the Fira Consortium UCI core/session/ranging
// groups; 0xB and 0xE sit in the vendor-reserved range (0x9-0xF) the
// UCI spec sets aside for platform (Android) and emulator-specific
// (Pica) extensions.
const (
	GroupCore    byte = 0x0
	GroupSession byte = 0x1
	GroupRanging byte = 0x2
	GroupAndroid byte = 0xB
	GroupPica    byte = 0xE
)

// Opcodes within GroupCore.
const (
	OpcodeDeviceReset      byte = 0x00
	OpcodeDeviceStatusNtf  byte = 0x01
	OpcodeGetDeviceInfo    byte = 0x02
	OpcodeGetCapsInfo      byte = 0x03
	OpcodeSetConfig        byte = 0x04
	OpcodeGetConfig        byte = 0x05
	OpcodeGenericErrorNtf  byte = 0x07
)

// Opcodes within GroupSession.
const (
	OpcodeSessionInit                          byte = 0x00
	OpcodeSessionDeinit                        byte = 0x01
	OpcodeSessionStatusNtf                      byte = 0x02
	OpcodeSessionSetAppConfig                  byte = 0x03
	OpcodeSessionGetAppConfig                  byte = 0x04
	OpcodeSessionGetCount                      byte = 0x05
	OpcodeSessionGetState                      byte = 0x06
	OpcodeSessionUpdateControllerMulticastList byte = 0x07
)

// Opcodes within GroupRanging.
const (
	OpcodeRangeStart               byte = 0x00
	OpcodeRangeStop                byte = 0x01
	OpcodeRangeGetRangingCount     byte = 0x02
	OpcodeShortMacTwoWayRangeDataNtf    byte = 0x03
	OpcodeExtendedMacTwoWayRangeDataNtf byte = 0x04
)

// Opcodes within GroupAndroid.
const (
	OpcodeSetCountryCode byte = 0x00
	OpcodeGetPowerStats  byte = 0x01
)

// Opcodes within GroupPica.
const (
	OpcodeInitDevice         byte = 0x00
	OpcodeSetDevicePosition  byte = 0x01
	OpcodeCreateAnchor       byte = 0x02
	OpcodeSetAnchorPosition  byte = 0x03
	OpcodeDestroyAnchor      byte = 0x04
)

func groupRecognized(gid byte) bool {
	switch gid {
	case GroupCore, GroupSession, GroupRanging, GroupAndroid, GroupPica:
		return true
	default:
		return false
	}
}
