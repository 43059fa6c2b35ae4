package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"goflare.io/billing/driver"
	"goflare.io/billing/models"
	"goflare.io/billing/sqlc"
)

type stubRow struct {
	event sqlc.Event
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.event.ID
	*dest[1].(*string) = r.event.Type
	*dest[2].(*bool) = r.event.Processed
	*dest[3].(*pgtype.Timestamptz) = r.event.CreatedAt
	*dest[4].(*pgtype.Timestamptz) = r.event.UpdatedAt
	return nil
}

type stubPool struct {
	driver.PostgresPool
	row      stubRow
	execErr  error
	execSQL  string
	execArgs []any
}

func (p *stubPool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execSQL = sql
	p.execArgs = args
	return pgconn.NewCommandTag("UPDATE 1"), p.execErr
}

func (p *stubPool) QueryRow(context.Context, string, ...any) pgx.Row {
	return p.row
}

func TestRepositoryGetByID(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pool := &stubPool{row: stubRow{event: sqlc.Event{
		ID:        "evt_1",
		Type:      "setup_intent.succeeded",
		Processed: true,
		CreatedAt: pgtype.Timestamptz{Time: created, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: created, Valid: true},
	}}}
	repo := NewRepository(pool, zap.NewNop())

	event, err := repo.GetByID(context.Background(), "evt_1")
	require.NoError(t, err)
	assert.Equal(t, &models.Event{
		ID:        "evt_1",
		Type:      stripe.EventTypeSetupIntentSucceeded,
		Processed: true,
		CreatedAt: created,
		UpdatedAt: created,
	}, event)
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewRepository(&stubPool{row: stubRow{err: pgx.ErrNoRows}}, zap.NewNop())

	_, err := repo.GetByID(context.Background(), "evt_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryGetByIDDatabaseError(t *testing.T) {
	dbErr := errors.New("conn closed")
	repo := NewRepository(&stubPool{row: stubRow{err: dbErr}}, zap.NewNop())

	_, err := repo.GetByID(context.Background(), "evt_1")
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRepositoryCreate(t *testing.T) {
	pool := &stubPool{}
	repo := NewRepository(pool, zap.NewNop())

	err := repo.Create(context.Background(), &models.Event{ID: "evt_1", Type: stripe.EventTypeSetupIntentCreated})
	require.NoError(t, err)
	assert.Contains(t, pool.execSQL, "ON CONFLICT (id) DO NOTHING")
	assert.Equal(t, []any{"evt_1", "setup_intent.created", false}, pool.execArgs)
}

func TestRepositoryMarkAsProcessedError(t *testing.T) {
	dbErr := errors.New("read only transaction")
	repo := NewRepository(&stubPool{execErr: dbErr}, zap.NewNop())

	err := repo.MarkAsProcessed(context.Background(), "evt_1")
	assert.ErrorIs(t, err, dbErr)
}
