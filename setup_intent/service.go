package setup_intent

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/billing/driver"
	"goflare.io/billing/models"
	"goflare.io/billing/models/enum"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
	ListURL          = "/v1/setup_intents"
)

var ErrInvalidListParams = errors.New("invalid list parameters")

type Service interface {
	Upsert(ctx context.Context, setupIntent *models.SetupIntent) error
	GetByID(ctx context.Context, id string) (*models.SetupIntent, error)
	List(ctx context.Context, params ListParams) (*models.SetupIntentList, error)
}

type ListParams struct {
	CustomerID string
	Status     enum.SetupIntentStatus
	Limit      uint64
	Offset     uint64
}

type service struct {
	repo               Repository
	transactionManager driver.Transactor
	logger             *zap.Logger
}

func NewService(repo Repository, tm driver.Transactor, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		logger:             logger,
	}
}

// Upsert stores the latest known state of a setup intent. The write is conditional in SQL,
// so a terminal status already stored is never replaced by a non-terminal one even when
// deliveries for the same intent are processed concurrently.
func (s *service) Upsert(ctx context.Context, setupIntent *models.SetupIntent) error {
	if setupIntent == nil || setupIntent.ID == "" {
		return fmt.Errorf("setup intent id is required")
	}

	var applied bool
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		applied, err = s.repo.Upsert(ctx, tx, setupIntent)
		return err
	})
	if err != nil {
		return err
	}

	if !applied {
		s.logger.Info("Skipping stale setup intent update",
			zap.String("setup_intent_id", setupIntent.ID),
			zap.String("incoming_status", string(setupIntent.Status.Value)))
		return nil
	}

	s.repo.Evict(ctx, setupIntent.ID)
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*models.SetupIntent, error) {
	var setupIntent *models.SetupIntent
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		setupIntent, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return setupIntent, err
}

// List returns one page in Stripe's list envelope. One extra row is fetched to compute has_more.
func (s *service) List(ctx context.Context, params ListParams) (*models.SetupIntentList, error) {
	if params.Status != "" && !params.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidListParams, params.Status)
	}
	if params.Offset > math.MaxInt32 {
		return nil, fmt.Errorf("%w: offset %d out of range", ErrInvalidListParams, params.Offset)
	}

	limit := NormalizeLimit(params.Limit)
	filter := ListFilter{CustomerID: params.CustomerID, Status: params.Status}

	var setupIntents []*models.SetupIntent
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		setupIntents, err = s.repo.List(ctx, tx, filter, limit+1, params.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}

	hasMore := uint64(len(setupIntents)) > limit
	if hasMore {
		setupIntents = setupIntents[:limit]
	}

	data := make([]models.SetupIntent, 0, len(setupIntents))
	for _, setupIntent := range setupIntents {
		data = append(data, *setupIntent)
	}

	return &models.SetupIntentList{
		Object:  "list",
		HasMore: models.Some(hasMore),
		URL:     models.Some(ListURL),
		Data:    models.Some(data),
	}, nil
}

// NormalizeLimit applies the default page size and caps it at MaxListLimit.
func NormalizeLimit(limit uint64) uint64 {
	if limit == 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
