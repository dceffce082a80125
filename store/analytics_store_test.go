package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio/api/database"
	"folio/api/models"
)

// chConn implements the two driver.Conn calls the event store makes.
type chConn struct {
	driver.Conn
	batch *chBatch
	rows  *chRows
}

func (c *chConn) PrepareBatch(context.Context, string, ...driver.PrepareBatchOption) (driver.Batch, error) {
	return c.batch, nil
}

func (c *chConn) Query(context.Context, string, ...any) (driver.Rows, error) {
	return c.rows, nil
}

type chBatch struct {
	driver.Batch
	appendErr error
	appended  int
	aborted   bool
	sent      bool
}

func (b *chBatch) Append(...any) error {
	if b.appendErr != nil && b.appended == 1 {
		return b.appendErr
	}
	b.appended++
	return nil
}

func (b *chBatch) Abort() error { b.aborted = true; return nil }
func (b *chBatch) Send() error  { b.sent = true; return nil }

type chRows struct {
	driver.Rows
	left    int
	scanErr error
}

func (r *chRows) Next() bool {
	r.left--
	return r.left >= 0
}

func (r *chRows) Scan(...any) error { return r.scanErr }
func (r *chRows) Close() error      { return nil }
func (r *chRows) Err() error        { return nil }

func newClickHouseStore(conn *chConn) *ClickHouseEventStore {
	return NewClickHouseEventStore(&database.ClickHouseClient{Conn: conn}, zap.NewNop())
}

func TestClickHouseEventStore_AppendFailureFailsInsert(t *testing.T) {
	t.Parallel()

	batch := &chBatch{appendErr: errors.New("converting string to UUID is unsupported")}
	s := newClickHouseStore(&chConn{batch: batch})

	events := []models.AnalyticsEvent{
		{ID: uuid.New(), VisitorID: "v1", SessionID: "s1", PagePath: "/", CreatedAt: time.Now()},
		{ID: uuid.New(), VisitorID: "v2", SessionID: "s2", PagePath: "/", CreatedAt: time.Now()},
	}

	err := s.InsertEvents(context.Background(), events)
	require.ErrorIs(t, err, batch.appendErr)
	require.True(t, batch.aborted)
	require.False(t, batch.sent)
}

func TestClickHouseEventStore_InsertSendsBatch(t *testing.T) {
	t.Parallel()

	batch := &chBatch{}
	s := newClickHouseStore(&chConn{batch: batch})

	err := s.InsertEvents(context.Background(), []models.AnalyticsEvent{{ID: uuid.New(), CreatedAt: time.Now()}})
	require.NoError(t, err)
	require.Equal(t, 1, batch.appended)
	require.True(t, batch.sent)
}

func TestClickHouseEventStore_ScanFailureFailsList(t *testing.T) {
	t.Parallel()

	scanErr := errors.New("column count mismatch")
	s := newClickHouseStore(&chConn{rows: &chRows{left: 2, scanErr: scanErr}})

	events, err := s.ListEvents(context.Background(), time.Time{})
	require.ErrorIs(t, err, scanErr)
	require.Nil(t, events)
}
