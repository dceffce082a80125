package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"folio/api/database"
	"folio/api/models"
)

// SQLEventStore keeps analytics events next to the content tables.
type SQLEventStore struct {
	db  *database.DBClient
	log *zap.Logger
}

func NewSQLEventStore(db *database.DBClient, log *zap.Logger) *SQLEventStore {
	return &SQLEventStore{db: db, log: log}
}

func (s *SQLEventStore) InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin events transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, s.db.Rebind(`
		INSERT INTO analytics_events (
			id, visitor_id, session_id, page_path, country, device_type,
			duration_seconds, section, interaction, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare events insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.VisitorID, e.SessionID, e.PagePath, nullString(e.Country), nullString(e.DeviceType),
			nullInt64(e.DurationSeconds), nullString(e.Section), nullString(e.Interaction), e.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	s.log.Debug("inserted analytics events", zap.Int("count", len(events)))
	return nil
}

// ListEvents returns events created at or after since. A zero since returns everything.
func (s *SQLEventStore) ListEvents(ctx context.Context, since time.Time) ([]models.AnalyticsEvent, error) {
	query := `
		SELECT id, visitor_id, session_id, page_path, country, device_type,
			duration_seconds, section, interaction, created_at
		FROM analytics_events`
	var args []any
	if !since.IsZero() {
		query += ` WHERE created_at >= ?`
		args = append(args, since.UTC())
	}

	rows, err := s.db.DB.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics events: %w", err)
	}
	defer rows.Close()

	events := []models.AnalyticsEvent{}
	for rows.Next() {
		var (
			e                                     models.AnalyticsEvent
			country, device, section, interaction sql.NullString
			duration                              sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID, &e.VisitorID, &e.SessionID, &e.PagePath, &country, &device,
			&duration, &section, &interaction, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analytics event: %w", err)
		}
		e.Country = stringPtr(country)
		e.DeviceType = stringPtr(device)
		e.DurationSeconds = int64Ptr(duration)
		e.Section = stringPtr(section)
		e.Interaction = stringPtr(interaction)
		e.CreatedAt = e.CreatedAt.UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during analytics events query: %w", err)
	}
	return events, nil
}
