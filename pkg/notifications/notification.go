package notifications

import (
	"time"
)

// Type represents the notification category shown to the member.
type Type string

const (
	TypeInfo     Type = "info"
	TypeSuccess  Type = "success"
	TypeWarning  Type = "warning"
	TypeMessage  Type = "message"
	TypeEvent    Type = "event"
	TypeDocument Type = "document"
)

// Types lists every known notification type in display order.
var Types = []Type{TypeInfo, TypeSuccess, TypeWarning, TypeMessage, TypeEvent, TypeDocument}

// Valid reports whether t is one of the known notification types.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeMessage, TypeEvent, TypeDocument:
		return true
	}
	return false
}

// ParseType converts a raw string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Notification is a single record in a session's notification store.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"` // Optional navigation target
}

// HasLink reports whether the notification points somewhere.
func (n Notification) HasLink() bool {
	return n.Link != ""
}

// Input carries the caller-supplied part of a new notification.
// ID, Timestamp and Read are always assigned by the store.
type Input struct {
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}
