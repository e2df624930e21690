// Package models defines the domain entities for the expense service.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryOther is the catch-all category for anything the extractor
// cannot place into the fixed set.
const CategoryOther = "Other"

// Categories is the fixed, ordered set of expense categories. Exposed
// as a stable list so clients can enumerate it.
var Categories = []string{
	"Housing",
	"Transportation",
	"Food",
	"Utilities",
	"Insurance",
	"Medical/Healthcare",
	"Savings",
	"Debt",
	"Education",
	"Entertainment",
	CategoryOther,
}

// IsValidCategory reports whether name is an exact member of the fixed set.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeCategory maps a free-form category string onto the fixed set.
// Matching is case-insensitive; anything unrecognized (including the
// empty string) falls back to the catch-all.
func NormalizeCategory(name string) string {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return CategoryOther
}

// User maps an external Telegram identifier to the internal numeric id
// used for storage joins. Rows are provisioned administratively; the
// pipeline only ever reads them, and the existence of a row is the
// authorization signal.
type User struct {
	ID         int64
	TelegramID string
	CreatedAt  time.Time
}

// Expense is a single persisted expense entry.
type Expense struct {
	ID          int64
	UserID      int64
	Description string
	Amount      decimal.Decimal
	Category    string
	AddedAt     time.Time
}

// ExtractionResult is the outcome of running the LLM extractor over a
// message. When IsExpense is false the remaining fields are zero.
// Category carries the raw model output; normalization onto the fixed
// set happens during validation.
type ExtractionResult struct {
	IsExpense   bool
	Description string
	Amount      decimal.Decimal
	Category    string
}

// NotAnExpense is the negative extraction result.
var NotAnExpense = ExtractionResult{}

// CategoryStat is the per-category slice of an aggregate report.
type CategoryStat struct {
	Category    string
	Count       int64
	TotalAmount decimal.Decimal
}

// ExpenseStats summarizes a user's spending. Categories are ordered by
// descending total amount.
type ExpenseStats struct {
	TotalCount  int64
	TotalAmount decimal.Decimal
	Categories  []CategoryStat
}
