package uci

// SessionType distinguishes ranging session flavors. Only FiraRanging is
// exercised by the ranging scheduler; the others are recognized on the
// wire but otherwise behave identically in this emulator.
type SessionType byte

const (
	SessionTypeFiraRanging        SessionType = 0x00
	SessionTypeFiraDataTransfer   SessionType = 0x01
	SessionTypeFiraRangingAndData SessionType = 0x02
)

// SessionState is the session lifecycle state, wire-visible in
// SESSION_STATUS_NTF and SESSION_GET_STATE_RSP.
type SessionState byte

const (
	SessionStateDeinit SessionState = 0x00
	SessionStateInit   SessionState = 0x01
	SessionStateIdle   SessionState = 0x02
	SessionStateActive SessionState = 0x03
)

func (s SessionState) String() string {
	switch s {
	case SessionStateDeinit:
		return "Deinit"
	case SessionStateInit:
		return "Init"
	case SessionStateIdle:
		return "Idle"
	case SessionStateActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// ReasonCode accompanies SESSION_STATUS_NTF. The emulator only ever
// drives session state from UCI commands, so
// StateChangeWithSessionManagementCommands is the only value this core
// produces; the others are defined for wire completeness.
type ReasonCode byte

const (
	ReasonStateChangeWithSessionManagementCommands ReasonCode = 0x00
	ReasonMaxRangingRoundRetryCountReached         ReasonCode = 0x01
	ReasonMaxNumberOfMeasurementsReached           ReasonCode = 0x02
	ReasonSessionSuspendedDueToInbandSignal        ReasonCode = 0x03
	ReasonSessionResumedDueToInbandSignal          ReasonCode = 0x04
)

// DeviceState is carried by CORE_DEVICE_STATUS_NTF.
type DeviceState byte

const (
	DeviceStateReady  DeviceState = 0x01
	DeviceStateActive DeviceState = 0x02
	DeviceStateError  DeviceState = 0xFF
)

// ConfigID identifies a device-level (SET_CONFIG/GET_CONFIG) parameter.
type ConfigID byte

// AppConfigID identifies a session-level (SESSION_SET/GET_APP_CONFIG)
// parameter. DstMacAddressList, RangingInterval and MacAddressMode are
// the ones this emulator interprets; the rest round-trip opaquely.
type AppConfigID byte

const (
	AppConfigDeviceRole       AppConfigID = 0x00
	AppConfigRangingInterval  AppConfigID = 0x09
	AppConfigMacAddressMode   AppConfigID = 0x0A
	AppConfigDstMacAddressList AppConfigID = 0x0B
)

// MulticastAction is the action field of
// SESSION_UPDATE_CONTROLLER_MULTICAST_LIST.
type MulticastAction byte

const (
	MulticastActionAdd    MulticastAction = 0x00
	MulticastActionDelete MulticastAction = 0x01
)
