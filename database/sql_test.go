package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio/api/config"
)

func TestRebind(t *testing.T) {
	t.Parallel()

	q := `UPDATE projects SET name = ?, category = ? WHERE id = ?`

	require.Equal(t, q, Rebind(SQLite, q))
	require.Equal(t,
		`UPDATE projects SET name = $1, category = $2 WHERE id = $3`,
		Rebind(Postgres, q))
}

func TestNewSQLDB_SQLiteMigrate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := NewSQLDB(ctx, config.DatabaseConfig{Driver: "sqlite", URL: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, SQLite, db.Dialect)
	require.NoError(t, db.Migrate(ctx))
	// idempotent
	require.NoError(t, db.Migrate(ctx))

	for _, table := range []string{"projects", "testimonials", "analytics_events", "admins"} {
		var name string
		err := db.DB.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
