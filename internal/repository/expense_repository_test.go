package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-service/internal/database"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

func setupExpenseTest(t *testing.T, telegramID string) (*ExpenseRepository, *models.User, context.Context) {
	t.Helper()

	tx := database.TestTx(t)
	ctx := context.Background()

	user, err := NewUserRepository(tx).Provision(ctx, telegramID)
	require.NoError(t, err)

	return NewExpenseRepository(tx), user, ctx
}

func TestExpenseRepository_Create(t *testing.T) {
	t.Parallel()
	repo, user, ctx := setupExpenseTest(t, "tg-create")

	t.Run("creates expense", func(t *testing.T) {
		expense := &models.Expense{
			UserID:      user.ID,
			Description: "Pizza",
			Amount:      decimal.NewFromFloat(20.0),
			Category:    "Food",
		}

		err := repo.Create(ctx, expense)
		require.NoError(t, err)
		require.NotZero(t, expense.ID)
		require.False(t, expense.AddedAt.IsZero())
	})

	t.Run("rejects unknown user id", func(t *testing.T) {
		expense := &models.Expense{
			UserID:      999999999,
			Description: "Orphan",
			Amount:      decimal.NewFromFloat(1.0),
			Category:    "Other",
		}

		err := repo.Create(ctx, expense)
		require.Error(t, err)
	})
}

func TestExpenseRepository_ListRecent(t *testing.T) {
	t.Parallel()
	repo, user, ctx := setupExpenseTest(t, "tg-list")

	seed := []struct {
		desc   string
		amount float64
		cat    string
	}{
		{"Pizza", 20.0, "Food"},
		{"Gas", 45.50, "Transportation"},
		{"Netflix", 15.99, "Entertainment"},
	}
	for _, s := range seed {
		err := repo.Create(ctx, &models.Expense{
			UserID:      user.ID,
			Description: s.desc,
			Amount:      decimal.NewFromFloat(s.amount),
			Category:    s.cat,
		})
		require.NoError(t, err)
	}

	t.Run("returns most recent first", func(t *testing.T) {
		expenses, err := repo.ListRecent(ctx, "tg-list", 10)
		require.NoError(t, err)
		require.Len(t, expenses, 3)
		// All three share the transaction timestamp, so ordering falls
		// back to descending id, i.e. insertion order reversed.
		require.Equal(t, "Netflix", expenses[0].Description)
		require.Equal(t, "Pizza", expenses[2].Description)
	})

	t.Run("respects limit", func(t *testing.T) {
		expenses, err := repo.ListRecent(ctx, "tg-list", 2)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
	})

	t.Run("defaults non-positive limit", func(t *testing.T) {
		expenses, err := repo.ListRecent(ctx, "tg-list", 0)
		require.NoError(t, err)
		require.Len(t, expenses, 3)
	})

	t.Run("empty for unknown user", func(t *testing.T) {
		expenses, err := repo.ListRecent(ctx, "tg-nobody", 10)
		require.NoError(t, err)
		require.Empty(t, expenses)
	})
}

func TestExpenseRepository_Stats(t *testing.T) {
	t.Parallel()
	repo, user, ctx := setupExpenseTest(t, "tg-stats")

	seed := []struct {
		desc   string
		amount float64
		cat    string
	}{
		{"Pizza", 20.0, "Food"},
		{"Groceries", 55.0, "Food"},
		{"Gas", 45.50, "Transportation"},
	}
	for _, s := range seed {
		err := repo.Create(ctx, &models.Expense{
			UserID:      user.ID,
			Description: s.desc,
			Amount:      decimal.NewFromFloat(s.amount),
			Category:    s.cat,
		})
		require.NoError(t, err)
	}

	t.Run("aggregates by category, largest first", func(t *testing.T) {
		stats, err := repo.Stats(ctx, "tg-stats")
		require.NoError(t, err)
		require.EqualValues(t, 3, stats.TotalCount)
		require.True(t, stats.TotalAmount.Equal(decimal.NewFromFloat(120.50)),
			"total = %s", stats.TotalAmount)

		require.Len(t, stats.Categories, 2)
		require.Equal(t, "Food", stats.Categories[0].Category)
		require.EqualValues(t, 2, stats.Categories[0].Count)
		require.True(t, stats.Categories[0].TotalAmount.Equal(decimal.NewFromFloat(75.0)))
		require.Equal(t, "Transportation", stats.Categories[1].Category)
	})

	t.Run("stats match the recent list", func(t *testing.T) {
		stats, err := repo.Stats(ctx, "tg-stats")
		require.NoError(t, err)

		expenses, err := repo.ListRecent(ctx, "tg-stats", 100)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, e := range expenses {
			sum = sum.Add(e.Amount)
		}
		require.True(t, stats.TotalAmount.Equal(sum))
		require.EqualValues(t, len(expenses), stats.TotalCount)
	})

	t.Run("zero-valued for unknown user", func(t *testing.T) {
		stats, err := repo.Stats(ctx, "tg-nobody")
		require.NoError(t, err)
		require.Zero(t, stats.TotalCount)
		require.True(t, stats.TotalAmount.IsZero())
		require.Empty(t, stats.Categories)
	})
}

func TestExpenseRepository_UserIsolation(t *testing.T) {
	t.Parallel()
	tx := database.TestTx(t)
	ctx := context.Background()
	userRepo := NewUserRepository(tx)
	repo := NewExpenseRepository(tx)

	alice, err := userRepo.Provision(ctx, "tg-alice")
	require.NoError(t, err)
	bob, err := userRepo.Provision(ctx, "tg-bob")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &models.Expense{
		UserID: alice.ID, Description: "Pizza", Amount: decimal.NewFromFloat(20.0), Category: "Food",
	}))
	require.NoError(t, repo.Create(ctx, &models.Expense{
		UserID: bob.ID, Description: "Gas", Amount: decimal.NewFromFloat(45.50), Category: "Transportation",
	}))

	aliceExpenses, err := repo.ListRecent(ctx, "tg-alice", 10)
	require.NoError(t, err)
	require.Len(t, aliceExpenses, 1)
	require.Equal(t, "Pizza", aliceExpenses[0].Description)
	require.Equal(t, alice.ID, aliceExpenses[0].UserID)

	bobExpenses, err := repo.ListRecent(ctx, "tg-bob", 10)
	require.NoError(t, err)
	require.Len(t, bobExpenses, 1)
	require.Equal(t, "Gas", bobExpenses[0].Description)
	require.Equal(t, bob.ID, bobExpenses[0].UserID)
}
