package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

// ValidatedExpense holds extraction fields that passed validation. Its
// category is always a member of the fixed set.
type ValidatedExpense struct {
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Validate re-checks an extraction result before persistence: the
// description must be non-empty and the amount positive. The checks
// duplicate the extractor's own so a misbehaving extractor cannot push
// bad data into the store. Category normalization onto the fixed set
// happens here and nowhere else.
func Validate(result models.ExtractionResult) (ValidatedExpense, bool) {
	if !result.IsExpense {
		return ValidatedExpense{}, false
	}

	description := strings.TrimSpace(result.Description)
	if description == "" {
		return ValidatedExpense{}, false
	}

	if !result.Amount.IsPositive() {
		return ValidatedExpense{}, false
	}

	return ValidatedExpense{
		Description: description,
		Amount:      result.Amount,
		Category:    models.NormalizeCategory(result.Category),
	}, true
}
