package setup_intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"goflare.io/billing/driver"
	"goflare.io/billing/models"
	"goflare.io/billing/models/enum"
	"goflare.io/billing/sqlc"
	"goflare.io/ember"
	"goflare.io/ember/config"
)

var ErrNotFound = errors.New("setup intent not found")

var (
	_ Repository = (*repository)(nil)
	_ Cache      = (*ember.MultiCache)(nil)
)

type Repository interface {
	// Upsert reports false when the stored row kept a terminal status and the write was skipped.
	Upsert(ctx context.Context, tx pgx.Tx, setupIntent *models.SetupIntent) (bool, error)
	GetByID(ctx context.Context, tx pgx.Tx, id string) (*models.SetupIntent, error)
	List(ctx context.Context, tx pgx.Tx, filter ListFilter, limit, offset uint64) ([]*models.SetupIntent, error)
	// Evict drops the cached payload; call it only after the writing transaction committed.
	Evict(ctx context.Context, id string)
}

// Cache is the part of *ember.MultiCache the repository uses.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration ...time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ListFilter narrows List; zero fields are ignored.
type ListFilter struct {
	CustomerID string
	Status     enum.SetupIntentStatus
}

type repository struct {
	conn   driver.PostgresPool
	logger *zap.Logger
	cache  Cache
}

func NewRepository(conn driver.PostgresPool, logger *zap.Logger, cache *ember.MultiCache) Repository {
	return newRepository(conn, logger, cache)
}

func newRepository(conn driver.PostgresPool, logger *zap.Logger, cache Cache) *repository {
	return &repository{
		conn:   conn,
		logger: logger,
		cache:  cache,
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("setup_intent:%s", id)
}

func (r *repository) Upsert(ctx context.Context, tx pgx.Tx, setupIntent *models.SetupIntent) (bool, error) {
	params, err := upsertParams(setupIntent)
	if err != nil {
		return false, err
	}

	affected, err := sqlc.New(r.conn).WithTx(tx).UpsertSetupIntent(ctx, params)
	if err != nil {
		return false, fmt.Errorf("failed to upsert setup intent: %w", err)
	}

	return affected > 0, nil
}

func (r *repository) Evict(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		r.logger.Warn("Failed to evict cached setup intent", zap.Error(err), zap.String("setup_intent_id", id))
	}
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id string) (*models.SetupIntent, error) {
	var payload []byte
	found, err := r.cache.Get(ctx, cacheKey(id), &payload)
	if err != nil {
		r.logger.Warn("Failed to get setup intent from cache", zap.Error(err), zap.String("setup_intent_id", id))
	} else if found {
		setupIntent, err := models.DecodeSetupIntent(payload)
		if err == nil {
			return setupIntent, nil
		}
		r.logger.Warn("Discarding undecodable cached setup intent", zap.Error(err), zap.String("setup_intent_id", id))
	}

	row, err := sqlc.New(r.conn).WithTx(tx).GetSetupIntent(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setup intent: %w", err)
	}

	setupIntent, err := decodeRow(row)
	if err != nil {
		return nil, err
	}

	if err = r.cache.Set(ctx, cacheKey(id), row.Payload, config.NewConfig().DefaultExpiration); err != nil {
		r.logger.Warn("Failed to cache setup intent", zap.Error(err), zap.String("setup_intent_id", id))
	}

	return setupIntent, nil
}

func (r *repository) List(ctx context.Context, tx pgx.Tx, filter ListFilter, limit, offset uint64) ([]*models.SetupIntent, error) {
	rows, err := sqlc.New(r.conn).WithTx(tx).ListSetupIntents(ctx, listParams(filter, limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list setup intents: %w", err)
	}

	setupIntents := make([]*models.SetupIntent, 0, len(rows))
	for _, row := range rows {
		setupIntent, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		setupIntents = append(setupIntents, setupIntent)
	}

	return setupIntents, nil
}

func upsertParams(setupIntent *models.SetupIntent) (sqlc.UpsertSetupIntentParams, error) {
	payload, err := json.Marshal(setupIntent)
	if err != nil {
		return sqlc.UpsertSetupIntentParams{}, fmt.Errorf("failed to encode setup intent %s: %w", setupIntent.ID, err)
	}

	// created drives list ordering; fall back to ingestion time when Stripe omitted it
	createdAt := setupIntent.Created.Time
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	params := sqlc.UpsertSetupIntentParams{
		StripeID:  setupIntent.ID,
		Livemode:  setupIntent.Livemode.OrElse(false),
		Payload:   payload,
		CreatedAt: pgtype.Timestamptz{Time: createdAt, Valid: true},
	}
	if customer, ok := setupIntent.Customer.Get(); ok {
		params.CustomerID = pgtype.Text{String: customer, Valid: true}
	}
	if status, ok := setupIntent.Status.Get(); ok {
		params.Status = pgtype.Text{String: string(status), Valid: true}
	}

	return params, nil
}

func listParams(filter ListFilter, limit, offset uint64) sqlc.ListSetupIntentsParams {
	params := sqlc.ListSetupIntentsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	}
	if filter.CustomerID != "" {
		params.CustomerID = pgtype.Text{String: filter.CustomerID, Valid: true}
	}
	if filter.Status != "" {
		params.Status = pgtype.Text{String: string(filter.Status), Valid: true}
	}
	return params
}

func decodeRow(row sqlc.SetupIntent) (*models.SetupIntent, error) {
	setupIntent, err := models.DecodeSetupIntent(row.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored setup intent %s: %w", row.StripeID, err)
	}
	return setupIntent, nil
}
