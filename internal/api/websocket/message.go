package websocket

import "time"

// Message types for WebSocket communication
const (
	MessageTypeScheduleUpdate = "schedule_update"
	MessageTypeSubscribe      = "subscribe"
	MessageTypeHeartbeat      = "heartbeat"
	MessageTypeError          = "error"
)

// ClientMessage is a message from client to server
type ClientMessage struct {
	Type   string `json:"type"`
	TeamID string `json:"team_id,omitempty"`
}

// ServerMessage is a message from server to client
type ServerMessage struct {
	Type      string      `json:"type"`
	TeamID    string      `json:"team_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorMessage is the payload of an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
