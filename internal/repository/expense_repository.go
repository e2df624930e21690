package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-service/internal/database"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

// DefaultListLimit bounds recent-expense queries when the caller does
// not specify a limit.
const DefaultListLimit = 10

// ExpenseRepository handles expense database operations.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create adds a new expense. The insert is a single statement, so one
// expense either lands completely or not at all.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (user_id, description, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, added_at
	`, expense.UserID, expense.Description, expense.Amount, expense.Category,
	).Scan(&expense.ID, &expense.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListRecent retrieves a user's expenses by external identifier, most
// recent first, bounded by limit.
func (r *ExpenseRepository) ListRecent(ctx context.Context, telegramID string, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.user_id, e.description, e.amount, e.category, e.added_at
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE u.telegram_id = $1
		ORDER BY e.added_at DESC, e.id DESC
		LIMIT $2
	`, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &exp.Description, &exp.Amount, &exp.Category, &exp.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// Stats aggregates a user's spending by category, ordered by descending
// per-category total.
func (r *ExpenseRepository) Stats(ctx context.Context, telegramID string) (*models.ExpenseStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.category, COUNT(*), COALESCE(SUM(e.amount), 0)
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE u.telegram_id = $1
		GROUP BY e.category
		ORDER BY COALESCE(SUM(e.amount), 0) DESC
	`, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense stats: %w", err)
	}
	defer rows.Close()

	stats := &models.ExpenseStats{TotalAmount: decimal.Zero}
	for rows.Next() {
		var cs models.CategoryStat
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan expense stats: %w", err)
		}
		stats.TotalCount += cs.Count
		stats.TotalAmount = stats.TotalAmount.Add(cs.TotalAmount)
		stats.Categories = append(stats.Categories, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense stats: %w", err)
	}
	return stats, nil
}
