package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	pool := TestPool(t)
	ctx := context.Background()

	// TestPool already ran the migrations; running them again must be
	// a no-op, not an error.
	require.NoError(t, RunMigrations(ctx, pool))

	t.Run("creates users table", func(t *testing.T) {
		var exists bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_name = 'users'
			)
		`).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("creates expenses table", func(t *testing.T) {
		var exists bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_name = 'expenses'
			)
		`).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("telegram_id is unique", func(t *testing.T) {
		tx := TestTx(t)
		_, err := tx.Exec(ctx, `INSERT INTO users (telegram_id) VALUES ('dup-check')`)
		require.NoError(t, err)
		_, err = tx.Exec(ctx, `INSERT INTO users (telegram_id) VALUES ('dup-check')`)
		require.Error(t, err)
	})
}
