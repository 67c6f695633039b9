package remote

import "encoding/json"

// Message is the JSON envelope exchanged over the WebSocket. Frames travel
// separately as binary PNG messages.
type Message struct {
	Type      string          `json:"type"`
	SurfaceID string          `json:"surfaceId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// PointerPayload carries one pointer action in page coordinates.
type PointerPayload struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// WelcomePayload is sent once after the connection is accepted.
type WelcomePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ErrorPayload reports a rejected message.
type ErrorPayload struct {
	Message string `json:"message"`
}

// SurfaceInfo describes a surface in the /surfaces listing.
type SurfaceInfo struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Frame  uint64 `json:"frame"`
}

const (
	TypeWelcome = "welcome"
	TypePointer = "pointer"
	TypeError   = "error"

	ActionDown   = "down"
	ActionMove   = "move"
	ActionUp     = "up"
	ActionCancel = "cancel"
)
