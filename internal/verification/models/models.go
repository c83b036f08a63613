// Package models holds the verification result types shared by the
// pipeline, its stores and its transport.
package models

import "time"

// Outcome is the result of checking one number.
type Outcome string

const (
	OutcomeRegistered    Outcome = "REGISTERED"
	OutcomeNotRegistered Outcome = "NOT_REGISTERED"
	OutcomeCheckFailed   Outcome = "CHECK_FAILED"
)

// Label is the operator-facing wording of the outcome.
func (o Outcome) Label() string {
	switch o {
	case OutcomeRegistered:
		return "Available on WhatsApp"
	case OutcomeNotRegistered:
		return "Not available on WhatsApp"
	default:
		return "Error checking status"
	}
}

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeRegistered, OutcomeNotRegistered, OutcomeCheckFailed:
		return true
	}
	return false
}

// Result is the immutable outcome of one input row.
type Result struct {
	RawNumber string    `json:"number"`
	Address   string    `json:"address"`
	Outcome   Outcome   `json:"outcome"`
	CheckedAt time.Time `json:"checked_at"`
}

// Record is a persisted Result with its store-assigned identifier.
type Record struct {
	ID int64 `json:"id"`
	Result
}

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Total         int `json:"total"`
	Registered    int `json:"registered"`
	NotRegistered int `json:"not_registered"`
	Failed        int `json:"failed"`
}

// Add counts one more outcome.
func (s *Summary) Add(o Outcome) {
	s.Total++
	switch o {
	case OutcomeRegistered:
		s.Registered++
	case OutcomeNotRegistered:
		s.NotRegistered++
	default:
		s.Failed++
	}
}

// BatchResult is the ordered output of one batch.
type BatchResult struct {
	Results []Result
	Summary Summary
}
