package database

import (
	"context"
	"fmt"
)

type columnTypes struct {
	uuid, timestamp, boolean, bytes string
}

var dialectTypes = map[Dialect]columnTypes{
	Postgres: {uuid: "UUID", timestamp: "TIMESTAMPTZ", boolean: "BOOLEAN", bytes: "BYTEA"},
	SQLite:   {uuid: "TEXT", timestamp: "DATETIME", boolean: "BOOLEAN", bytes: "BLOB"},
}

func schema(d Dialect) []string {
	t := dialectTypes[d]
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS projects (
			id %[1]s PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT NOT NULL,
			tech_stack TEXT NOT NULL DEFAULT '[]',
			cover_image_url TEXT NOT NULL DEFAULT '',
			gallery_images TEXT NOT NULL DEFAULT '[]',
			category TEXT NOT NULL CHECK (category IN ('professional', 'personal')),
			is_featured %[3]s NOT NULL DEFAULT FALSE,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, t.uuid, t.timestamp, t.boolean),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS testimonials (
			id %[1]s PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			company TEXT,
			content TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			published %[3]s NOT NULL DEFAULT FALSE,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, t.uuid, t.timestamp, t.boolean),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS analytics_events (
			id %[1]s PRIMARY KEY,
			visitor_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			page_path TEXT NOT NULL,
			country TEXT,
			device_type TEXT,
			duration_seconds BIGINT CHECK (duration_seconds >= 0),
			section TEXT,
			interaction TEXT,
			created_at %[2]s NOT NULL
		)`, t.uuid, t.timestamp),
		`CREATE INDEX IF NOT EXISTS idx_analytics_events_created_at ON analytics_events (created_at)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admins (
			id %[1]s PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			hashed_password %[3]s NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, t.uuid, t.timestamp, t.bytes),
	}
}

// Migrate creates the content, analytics and admin tables when missing.
func (c *DBClient) Migrate(ctx context.Context) error {
	for i, stmt := range schema(c.Dialect) {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i, err)
		}
	}
	c.log.Info("database schema is up to date")
	return nil
}
