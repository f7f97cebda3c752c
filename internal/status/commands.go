package status

import (
	"encoding/json"
	"fmt"
	"time"

	"clicker/internal/core/autoclicker"
)

// MaxCPS bounds remote set_min_cps/set_max_cps values.
const MaxCPS = 1000

// Controller is the control surface the server drives.
type Controller interface {
	SetMinCPS(v uint32)
	SetMaxCPS(v uint32)
	SetClickMode(mode autoclicker.ClickMode)
	ToggleRunning()
	Status() autoclicker.Status
}

// Command is an inbound client message.
type Command struct {
	Type  string `json:"type"`
	Value uint32 `json:"value,omitempty"`
	Mode  string `json:"mode,omitempty"`
}

// envelope is the wire format of every outbound frame.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

type errorData struct {
	Command string `json:"command,omitempty"`
	Message string `json:"message"`
}

func marshalEnvelope(typ string, data any) ([]byte, error) {
	now := time.Now().UTC()
	return json.Marshal(envelope{Type: typ, Ts: &now, Data: data})
}

func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	if cmd.Type == "" {
		return Command{}, fmt.Errorf("command type is empty")
	}
	return cmd, nil
}

// Apply validates cmd against the current bounds and applies it. Keeping
// min below max is this surface's responsibility.
func Apply(ctrl Controller, cmd Command) error {
	switch cmd.Type {
	case "toggle":
		ctrl.ToggleRunning()
	case "set_min_cps":
		maxCPS := ctrl.Status().State.MaxCPS
		if cmd.Value < 1 || cmd.Value >= maxCPS {
			return fmt.Errorf("min_cps must be in [1, %d]", maxCPS-1)
		}
		ctrl.SetMinCPS(cmd.Value)
	case "set_max_cps":
		minCPS := ctrl.Status().State.MinCPS
		if cmd.Value <= minCPS || cmd.Value > MaxCPS {
			return fmt.Errorf("max_cps must be in [%d, %d]", minCPS+1, MaxCPS)
		}
		ctrl.SetMaxCPS(cmd.Value)
	case "set_mode":
		mode, err := autoclicker.ParseClickMode(cmd.Mode)
		if err != nil {
			return err
		}
		ctrl.SetClickMode(mode)
	case "status":
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
	return nil
}
