package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"goflare.io/billing/driver"
	"goflare.io/billing/models"
	"goflare.io/billing/sqlc"
)

var ErrNotFound = errors.New("event not found")

var _ Repository = (*repository)(nil)

type Repository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	MarkAsProcessed(ctx context.Context, id string) error
}

type repository struct {
	conn   driver.PostgresPool
	logger *zap.Logger
}

func NewRepository(conn driver.PostgresPool, logger *zap.Logger) Repository {
	return &repository{
		conn:   conn,
		logger: logger,
	}
}

// Create is a no-op when the event was already recorded.
func (r *repository) Create(ctx context.Context, event *models.Event) error {
	err := sqlc.New(r.conn).CreateEvent(ctx, sqlc.CreateEventParams{
		ID:        event.ID,
		Type:      string(event.Type),
		Processed: event.Processed,
	})
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	sqlcEvent, err := sqlc.New(r.conn).GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &models.Event{
		ID:        sqlcEvent.ID,
		Type:      stripe.EventType(sqlcEvent.Type),
		Processed: sqlcEvent.Processed,
		CreatedAt: sqlcEvent.CreatedAt.Time,
		UpdatedAt: sqlcEvent.UpdatedAt.Time,
	}, nil
}

func (r *repository) MarkAsProcessed(ctx context.Context, id string) error {
	if err := sqlc.New(r.conn).MarkEventAsProcessed(ctx, id); err != nil {
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}
	return nil
}
