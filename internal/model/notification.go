package model

import (
	"encoding/json"
	"time"
)

// Notification.UserID is a free-form recipient tag, not a foreign key: the
// front end historically filed notifications under identifiers that never
// existed in the users table.
type Notification struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      string          `json:"type"`
	Priority  int             `json:"priority"`
	UserID    string          `json:"user_id"`
	Read      bool            `json:"read"`
	ReadAt    *time.Time      `json:"read_at"`
	Meta      json.RawMessage `json:"meta"`
	CreatedAt time.Time       `json:"created_at"`
}
