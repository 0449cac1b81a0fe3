package uci

// Command is the tagged-union interface implemented by every decoded
// UCI command. The concrete type is recovered with a type switch in the
// orchestrator's dispatch table, keyed off (GroupID, OpcodeID) at parse
// time and off the concrete Go type at dispatch time.
type Command interface {
	GroupID() byte
	OpcodeID() byte
	isUCICommand()
}

// Response is implemented by every typed Response value this core can
// produce. Encode renders the full framed PDU (header + payload).
type Response interface {
	GroupID() byte
	OpcodeID() byte
	Encode() []byte
}

// Notification is implemented by every typed Notification value this
// core can produce.
type Notification interface {
	GroupID() byte
	OpcodeID() byte
	Encode() []byte
}

type decoder func(payload []byte) (Command, error)

var dispatchTable = map[[2]byte]decoder{}

func register(group, opcode byte, d decoder) {
	dispatchTable[[2]byte{group, opcode}] = d
}
