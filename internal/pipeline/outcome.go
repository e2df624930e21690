// Package pipeline implements the expense-message processing pipeline:
// authorization, LLM extraction, validation and persistence, folded
// into a single typed outcome per inbound message.
package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status identifies the terminal state of one pipeline invocation.
type Status int

const (
	// StatusUnauthorized means the external identifier has no user mapping.
	StatusUnauthorized Status = iota
	// StatusNotAnExpense means extraction produced a negative result.
	StatusNotAnExpense
	// StatusInvalidExtraction means the extracted fields failed validation.
	StatusInvalidExtraction
	// StatusPersistenceFailed means the expense could not be saved.
	StatusPersistenceFailed
	// StatusRecorded means the expense was persisted.
	StatusRecorded
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusUnauthorized:
		return "unauthorized"
	case StatusNotAnExpense:
		return "not_an_expense"
	case StatusInvalidExtraction:
		return "invalid_extraction"
	case StatusPersistenceFailed:
		return "persistence_failed"
	case StatusRecorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// Outcome is the contract boundary with the transport layer: exactly
// one variant per invocation. Description, Amount and Category are set
// only when Status is StatusRecorded.
type Outcome struct {
	Status      Status
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Recorded reports whether the invocation persisted an expense.
func (o Outcome) Recorded() bool {
	return o.Status == StatusRecorded
}

// Message returns the short user-facing message for this outcome.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusUnauthorized:
		return "User not authorized to use this bot"
	case StatusNotAnExpense:
		return "Message does not appear to be an expense"
	case StatusInvalidExtraction:
		return "Could not extract valid expense information"
	case StatusPersistenceFailed:
		return "Failed to save expense to database"
	case StatusRecorded:
		return fmt.Sprintf("%s expense added ✅", o.Category)
	default:
		return "Something went wrong"
	}
}
