package pipeline

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-service/internal/logger"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

// UserResolver resolves external identifiers to internal user ids.
// Implemented by repository.UserRepository.
type UserResolver interface {
	ResolveID(ctx context.Context, telegramID string) (id int64, found bool, err error)
}

// ExpenseRepository is the persistence surface the store needs.
// Implemented by repository.ExpenseRepository.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	ListRecent(ctx context.Context, telegramID string, limit int) ([]models.Expense, error)
	Stats(ctx context.Context, telegramID string) (*models.ExpenseStats, error)
}

// Store is the expense store the pipeline and the read-side endpoints
// talk to. It owns the degradation policy: repository errors are logged
// and folded into negative results (false, empty list, zero stats), so
// callers never see a raw database error.
type Store struct {
	users    UserResolver
	expenses ExpenseRepository
}

// NewStore creates a Store over the given repositories.
func NewStore(users UserResolver, expenses ExpenseRepository) *Store {
	return &Store{users: users, expenses: expenses}
}

// ResolveUserID maps an external identifier to an internal user id. The
// existence of the mapping is the authorization signal: a missing row
// and a failed lookup both come back as not found, never as an error.
func (s *Store) ResolveUserID(ctx context.Context, telegramID string) (int64, bool) {
	id, found, err := s.users.ResolveID(ctx, telegramID)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("telegram_id_hash", logger.HashTelegramID(telegramID)).
			Msg("user lookup failed")
		return 0, false
	}
	return id, found
}

// Save persists one expense under the given internal user id. The
// insert is a single statement. Returns false on any persistence error.
func (s *Store) Save(ctx context.Context, userID int64, description string, amount decimal.Decimal, category string) bool {
	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		logger.Log.Error().Err(err).
			Int64("user_id", userID).
			Str("category", category).
			Msg("failed to save expense")
		return false
	}

	logger.Log.Info().
		Str("description", logger.SanitizeDescription(description)).
		Str("amount", amount.String()).
		Str("category", category).
		Msg("expense saved")
	return true
}

// ListRecent returns a user's expenses, most recent first, bounded by
// limit. Query failures and absent users both yield an empty slice.
func (s *Store) ListRecent(ctx context.Context, telegramID string, limit int) []models.Expense {
	expenses, err := s.expenses.ListRecent(ctx, telegramID, limit)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("telegram_id_hash", logger.HashTelegramID(telegramID)).
			Msg("failed to list expenses")
		return nil
	}
	return expenses
}

// Stats returns a user's per-category spending summary. Query failures
// and absent users both yield a zero-valued result.
func (s *Store) Stats(ctx context.Context, telegramID string) *models.ExpenseStats {
	stats, err := s.expenses.Stats(ctx, telegramID)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("telegram_id_hash", logger.HashTelegramID(telegramID)).
			Msg("failed to aggregate expenses")
		return &models.ExpenseStats{TotalAmount: decimal.Zero}
	}
	return stats
}
