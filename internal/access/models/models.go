// Package models holds operator accounts and their control-panel sessions.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a control-panel user.
type Operator struct {
	ID           int64
	Username     string
	PasswordHash []byte
}

// SessionStatus is the state of an operator session.
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusInactive SessionStatus = "inactive"
)

// Session records one login. ID is a random token handed to the client.
type Session struct {
	ID         uuid.UUID
	OperatorID int64
	IPAddress  string
	LoginTime  time.Time
	LogoutTime *time.Time
	Status     SessionStatus
}

// IsActive reports whether the session has not been logged out.
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive
}
