package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"folio/api/database"
	"folio/api/models"
)

// ClickHouseEventStore keeps analytics events in ClickHouse.
type ClickHouseEventStore struct {
	DB  *database.ClickHouseClient
	log *zap.Logger
}

func NewClickHouseEventStore(chClient *database.ClickHouseClient, log *zap.Logger) *ClickHouseEventStore {
	return &ClickHouseEventStore{DB: chClient, log: log}
}

func (s *ClickHouseEventStore) InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column order must match the analytics_events table.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_events (
			id, visitor_id, session_id, page_path, country, device_type,
			duration_seconds, section, interaction, created_at
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, e := range events {
		err := batch.Append(
			e.ID,
			e.VisitorID,
			e.SessionID,
			e.PagePath,
			e.Country,
			e.DeviceType,
			e.DurationSeconds,
			e.Section,
			e.Interaction,
			e.CreatedAt.UTC(),
		)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append event %s to batch: %w", e.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	s.log.Debug("inserted analytics events", zap.Int("count", len(events)))
	return nil
}

// ListEvents returns events created at or after since. A zero since returns everything.
func (s *ClickHouseEventStore) ListEvents(ctx context.Context, since time.Time) ([]models.AnalyticsEvent, error) {
	query := `
		SELECT id, visitor_id, session_id, page_path, country, device_type,
			duration_seconds, section, interaction, created_at
		FROM analytics_events`
	var args []any
	if !since.IsZero() {
		query += ` WHERE created_at >= ?`
		args = append(args, since.UTC())
	}

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics events: %w", err)
	}
	defer rows.Close()

	events := []models.AnalyticsEvent{}
	for rows.Next() {
		var e models.AnalyticsEvent
		if err := rows.Scan(
			&e.ID, &e.VisitorID, &e.SessionID, &e.PagePath, &e.Country, &e.DeviceType,
			&e.DurationSeconds, &e.Section, &e.Interaction, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analytics event: %w", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics events: %w", err)
	}
	return events, nil
}
