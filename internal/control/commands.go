package control

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iamruinous/pica-emulator/internal/orchestrator"
	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

// commandRequest is the JSON body accepted by POST /command. Which of
// the geometry fields matter depends on Command.
type commandRequest struct {
	Command string  `json:"command"`
	Mac     string  `json:"mac"`
	X       int16   `json:"x"`
	Y       int16   `json:"y"`
	Z       int16   `json:"z"`
	Yaw     float64 `json:"yaw"`
	Pitch   float64 `json:"pitch"`
	Roll    float64 `json:"roll"`
}

// commandResponse mirrors orchestrator.Status as JSON.
type commandResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// handleCommand dispatches create-anchor, destroy-anchor, set-pose,
// init-uci-device, and get-state onto the orchestrator inbox.
func (c *Control) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commandResponse{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	if req.Command == "get-state" {
		c.writeState(w)
		return
	}

	mac, err := parseMac(req.Mac)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commandResponse{Error: err.Error()})
		return
	}
	pose := geometry.NewFromEuler(req.X, req.Y, req.Z, geometry.Euler{Yaw: req.Yaw, Pitch: req.Pitch, Roll: req.Roll})

	status, err := c.dispatch(req.Command, mac, pose)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commandResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{OK: status.OK, Error: status.Error})
}

func (c *Control) dispatch(command string, mac uci.MacAddress, pose geometry.Pose) (orchestrator.Status, error) {
	switch command {
	case "create-anchor":
		reply := make(chan orchestrator.Status, 1)
		c.orch.Inbox() <- orchestrator.CreateAnchorMsg{Mac: mac, Pose: pose, Reply: reply}
		return <-reply, nil
	case "destroy-anchor":
		reply := make(chan orchestrator.Status, 1)
		c.orch.Inbox() <- orchestrator.DestroyAnchorMsg{Mac: mac, Reply: reply}
		return <-reply, nil
	case "set-pose":
		reply := make(chan orchestrator.Status, 1)
		c.orch.Inbox() <- orchestrator.SetPoseMsg{Mac: mac, Pose: pose, Reply: reply}
		return <-reply, nil
	case "init-uci-device":
		reply := make(chan orchestrator.Status, 1)
		c.orch.Inbox() <- orchestrator.InitUciDeviceMsg{Mac: mac, Pose: pose, Reply: reply}
		return <-reply, nil
	default:
		return orchestrator.Status{}, fmt.Errorf("unknown command: %s", command)
	}
}

func parseMac(s string) (uci.MacAddress, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return uci.MacAddress{}, fmt.Errorf("mac must be hex-encoded: %w", err)
	}
	switch len(b) {
	case 2:
		return uci.NewShortMac(b[0], b[1]), nil
	case 8:
		var arr [8]byte
		copy(arr[:], b)
		return uci.NewExtendedMac(arr), nil
	default:
		return uci.MacAddress{}, fmt.Errorf("mac must be 2 or 8 bytes hex-encoded, got %d bytes", len(b))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
