package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/expense-service/internal/database"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

// UserRepository handles user database operations. User rows are
// provisioned out-of-band; the pipeline only reads them.
type UserRepository struct {
	db database.PGXDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.PGXDB) *UserRepository {
	return &UserRepository{db: db}
}

// ResolveID looks up the internal user id for an external Telegram
// identifier. The found flag is false when no such mapping exists; an
// error is returned only when the lookup itself fails.
func (r *UserRepository) ResolveID(ctx context.Context, telegramID string) (id int64, found bool, err error) {
	scanErr := r.db.QueryRow(ctx, `
		SELECT id FROM users WHERE telegram_id = $1
	`, telegramID).Scan(&id)
	if scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve user: %w", scanErr)
	}
	return id, true, nil
}

// Provision inserts a user mapping for an external identifier. This is
// the administrative path that grants access; it is not called by the
// processing pipeline.
func (r *UserRepository) Provision(ctx context.Context, telegramID string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id)
		VALUES ($1)
		ON CONFLICT (telegram_id) DO UPDATE SET telegram_id = EXCLUDED.telegram_id
		RETURNING id, telegram_id, created_at
	`, telegramID).Scan(&user.ID, &user.TelegramID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return &user, nil
}
