package pipeline

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-service/internal/logger"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

// Extractor produces an extraction result from a raw message. It must
// not fail: implementation errors degrade to the negative result.
type Extractor interface {
	Extract(ctx context.Context, message string) models.ExtractionResult
}

// ExpenseStore is what the orchestrator needs from the store.
// Satisfied by *Store.
type ExpenseStore interface {
	ResolveUserID(ctx context.Context, telegramID string) (int64, bool)
	Save(ctx context.Context, userID int64, description string, amount decimal.Decimal, category string) bool
}

// Processor sequences the pipeline stages. Each invocation is an
// independent stateless unit of work; a Processor is safe for
// concurrent use and imposes no ordering between invocations.
type Processor struct {
	extractor Extractor
	store     ExpenseStore
}

// NewProcessor creates a Processor over an extractor and a store.
func NewProcessor(extractor Extractor, store ExpenseStore) *Processor {
	return &Processor{
		extractor: extractor,
		store:     store,
	}
}

// Process runs one message through the pipeline and returns exactly one
// outcome. No stage is retried; re-delivery is the caller's decision.
func (p *Processor) Process(ctx context.Context, telegramID, message string) Outcome {
	idHash := logger.HashTelegramID(telegramID)
	logger.Log.Info().
		Str("telegram_id_hash", idHash).
		Msg("processing expense request")

	// Authorize. The user mapping doubles as the authorization signal,
	// and its internal id is what the expense is saved under, so one
	// lookup serves both.
	userID, authorized := p.store.ResolveUserID(ctx, telegramID)
	if !authorized {
		logger.Log.Warn().
			Str("telegram_id_hash", idHash).
			Msg("unauthorized user attempt")
		return Outcome{Status: StatusUnauthorized}
	}

	// Extract.
	result := p.extractor.Extract(ctx, message)
	if !result.IsExpense {
		logger.Log.Info().
			Str("telegram_id_hash", idHash).
			Str("message", logger.SanitizeText(message)).
			Msg("non-expense message")
		return Outcome{Status: StatusNotAnExpense}
	}

	// Validate. Duplicates the extractor's own checks on purpose; see
	// Validate.
	validated, ok := Validate(result)
	if !ok {
		logger.Log.Error().
			Str("telegram_id_hash", idHash).
			Msg("invalid expense data extracted")
		return Outcome{Status: StatusInvalidExtraction}
	}

	// Persist.
	if !p.store.Save(ctx, userID, validated.Description, validated.Amount, validated.Category) {
		logger.Log.Error().
			Str("telegram_id_hash", idHash).
			Msg("failed to save expense")
		return Outcome{Status: StatusPersistenceFailed}
	}

	return Outcome{
		Status:      StatusRecorded,
		Description: validated.Description,
		Amount:      validated.Amount,
		Category:    validated.Category,
	}
}
