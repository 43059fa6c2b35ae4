package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"goflare.io/billing/config"
	"goflare.io/billing/event"
	"goflare.io/billing/models"
	"goflare.io/billing/setup_intent"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNoHandler        = errors.New("no handler registered for event type")
)

type StripeBilling struct {
	webhookSecret string
	broker        Broker
	eventManager  *EventManager
	workerPool    *WorkerPool
	metrics       *Metrics
	logger        *zap.Logger

	event       event.Service
	setupIntent setup_intent.Service
}

func NewStripeBilling(config *config.Config,
	broker Broker,
	es event.Service,
	sis setup_intent.Service,
	metrics *Metrics,
	logger *zap.Logger) (Billing, error) {
	sb := &StripeBilling{
		webhookSecret: config.Stripe.WebhookSecret,
		broker:        broker,
		metrics:       metrics,
		logger:        logger,
		event:         es,
		setupIntent:   sis,
	}

	sb.eventManager = NewEventManager(broker, logger)
	sb.workerPool = NewWorkerPool(WorkerPoolConfig{
		MinWorkers: config.Worker.MinWorkers,
		MaxWorkers: config.Worker.MaxWorkers,
		QueueSize:  config.Worker.QueueSize,
	}, sb, logger)

	sb.registerEventHandlers()
	if err := sb.eventManager.SubscribeToEvents(sb.workerPool); err != nil {
		sb.workerPool.Shutdown()
		return nil, err
	}

	return sb, nil
}

func (sb *StripeBilling) GetSetupIntent(ctx context.Context, setupIntentID string) (*models.SetupIntent, error) {
	return sb.setupIntent.GetByID(ctx, setupIntentID)
}

func (sb *StripeBilling) ListSetupIntents(ctx context.Context, params setup_intent.ListParams) (*models.SetupIntentList, error) {
	return sb.setupIntent.List(ctx, params)
}

// HandleStripeWebhook handles Stripe webhook events
func (sb *StripeBilling) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	stripeEvent, err := webhook.ConstructEventWithOptions(payload, signature, sb.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		sb.metrics.WebhookReceived(OutcomeInvalidSignature)
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	logger := sb.logger.With(
		zap.String("event_id", stripeEvent.ID),
		zap.String("event_type", string(stripeEvent.Type)))

	processed, err := sb.event.IsEventProcessed(ctx, stripeEvent.ID)
	if err != nil {
		return fmt.Errorf("failed to check event status: %w", err)
	}
	if processed {
		logger.Info("Event is already processed")
		sb.metrics.WebhookReceived(OutcomeDuplicate)
		return nil
	}

	if _, exists := sb.eventManager.GetHandler(stripeEvent.Type); !exists {
		logger.Debug("Ignoring unhandled event type")
		sb.metrics.WebhookReceived(OutcomeIgnored)
		return nil
	}

	now := time.Now()
	eventModel := &models.Event{
		ID:        stripeEvent.ID,
		Type:      stripeEvent.Type,
		Processed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = sb.event.Create(ctx, eventModel); err != nil {
		logger.Error("Failed to create event", zap.Error(err))
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err = sb.eventManager.PublishEvent(&stripeEvent); err != nil {
		logger.Error("Failed to publish event", zap.Error(err))
		return err
	}

	sb.metrics.WebhookReceived(OutcomeAccepted)
	return nil
}

func (sb *StripeBilling) ProcessEvent(ctx context.Context, event *stripe.Event) error {
	handler, exists := sb.eventManager.GetHandler(event.Type)
	if !exists {
		return fmt.Errorf("%w: %s", ErrNoHandler, event.Type)
	}

	err := sb.processEvent(ctx, handler, event)
	sb.metrics.EventProcessed(event.Type, err)
	return err
}

func (sb *StripeBilling) processEvent(ctx context.Context, handler EventHandler, event *stripe.Event) error {
	if err := handler(ctx, event); err != nil {
		sb.logger.Error("Failed to handle event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return err
	}

	if err := sb.event.MarkEventAsProcessed(ctx, event.ID); err != nil {
		sb.logger.Error("Failed to mark event as processed",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}

	sb.logger.Info("Stripe event processed",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	return nil
}

func (sb *StripeBilling) handleSetupIntentEvent(ctx context.Context, stripeEvent *stripe.Event) error {
	if stripeEvent.Data == nil {
		return fmt.Errorf("event %s carries no data", stripeEvent.ID)
	}

	setupIntent, err := models.DecodeSetupIntent(stripeEvent.Data.Raw)
	if err != nil {
		fields := []zap.Field{zap.String("event_id", stripeEvent.ID), zap.Error(err)}
		var decodeErr *models.DecodeError
		if errors.As(err, &decodeErr) {
			fields = append(fields, zap.String("field", decodeErr.Path))
		}
		sb.logger.Error("Failed to decode setup intent", fields...)
		return fmt.Errorf("failed to decode setup intent: %w", err)
	}

	if err = sb.setupIntent.Upsert(ctx, setupIntent); err != nil {
		sb.logger.Error("Failed to upsert setup intent",
			zap.String("event_id", stripeEvent.ID),
			zap.String("setup_intent_id", setupIntent.ID),
			zap.Error(err))
		return err
	}

	return nil
}

// Close stops event delivery and waits for queued events to finish.
func (sb *StripeBilling) Close() {
	sb.logger.Info("Initiating graceful shutdown of workers and dispatcher")
	if err := sb.broker.Drain(); err != nil {
		sb.logger.Warn("Failed to drain broker", zap.Error(err))
	}
	sb.workerPool.Shutdown()
	sb.logger.Info("StripeBilling successfully shutdown")
}
