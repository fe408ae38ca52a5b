package store

import (
	"encoding/json"
	"time"
)

// Snapshot is the last good response body for a stats service path
type Snapshot struct {
	Key       string          `json:"key"`
	Body      json.RawMessage `json:"body"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// ScheduleLabel is the result label last published for a schedule entry
type ScheduleLabel struct {
	TeamID     string    `json:"team_id"`
	ScheduleID string    `json:"schedule_id"`
	Label      string    `json:"label"`
	Outcome    string    `json:"outcome"`
	UpdatedAt  time.Time `json:"updated_at"`
}
