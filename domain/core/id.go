package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SessionID identifies one browser playground session
type SessionID ID

// NewSessionID creates a fresh session identifier
func NewSessionID() SessionID { return SessionID(NewID()) }

func (id SessionID) String() string { return ID(id).String() }

// IsEmpty checks if the session ID is empty
func (id SessionID) IsEmpty() bool { return ID(id).IsEmpty() }

// ParseSessionID parses a string into SessionID. Only well-formed UUIDs are
// accepted so that arbitrary cookie values cannot create sessions.
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid session ID: %w", err)
	}
	return SessionID(parsed.String()), nil
}
