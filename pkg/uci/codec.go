package uci

// ParseOutcome tags what Parse found in an inbound PDU.
type ParseOutcome int

const (
	// ParsedCommand means Command is populated and should be dispatched.
	ParsedCommand ParseOutcome = iota
	// ParsedError means the PDU was malformed or unrecognized; ErrorFrame
	// holds a ready-to-send Response PDU (UNKNOWN_GID/UNKNOWN_OID) that
	// the caller should write back verbatim, or is nil when the header
	// itself could not be decoded.
	ParsedError
	// ParsedSkip means the PDU parsed fine but was not a Command (a
	// Response or Notification received on the inbound side, which this
	// emulator treats as a no-op rather than an error).
	ParsedSkip
)

// ParseResult is the outcome of decoding one framed PDU off the wire.
type ParseResult struct {
	Outcome   ParseOutcome
	Command   Command
	ErrorFrame []byte
}

// Parse decodes one complete PDU (header + payload, as produced by a
// StreamFramer) into a typed Command, or into a synthesized error
// Response when the PDU is malformed, targets an unrecognized group, or
// names an opcode this emulator's group does not implement.
func Parse(pdu []byte) ParseResult {
	h, err := parseHeader(pdu)
	if err != nil {
		return ParseResult{Outcome: ParsedError, ErrorFrame: nil}
	}
	payload := pdu[HeaderSize:]
	if len(payload) < int(h.Length) {
		return ParseResult{Outcome: ParsedError, ErrorFrame: nil}
	}
	payload = payload[:h.Length]

	if h.MessageType != MessageTypeCommand {
		return ParseResult{Outcome: ParsedSkip}
	}

	if !groupRecognized(h.GroupID) {
		return ParseResult{
			Outcome:    ParsedError,
			ErrorFrame: frame(MessageTypeResponse, h.GroupID, h.OpcodeID, []byte{byte(StatusUnknownGID)}),
		}
	}

	dec, ok := dispatchTable[[2]byte{h.GroupID, h.OpcodeID}]
	if !ok {
		return ParseResult{
			Outcome:    ParsedError,
			ErrorFrame: frame(MessageTypeResponse, h.GroupID, h.OpcodeID, []byte{byte(StatusUnknownOID)}),
		}
	}

	cmd, err := dec(payload)
	if err != nil {
		// Malformed payload on a recognized opcode is not differentiated
		// from an unrecognized one; both answer UNKNOWN_OID.
		return ParseResult{
			Outcome:    ParsedError,
			ErrorFrame: frame(MessageTypeResponse, h.GroupID, h.OpcodeID, []byte{byte(StatusUnknownOID)}),
		}
	}

	return ParseResult{Outcome: ParsedCommand, Command: cmd}
}
