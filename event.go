package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

const (
	eventSubjectPrefix = "stripe.event."
	eventSubjectAll    = eventSubjectPrefix + ">"
)

// Broker is the subset of *nats.Conn the event manager needs.
type Broker interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Drain() error
}

type EventHandler func(context.Context, *stripe.Event) error

type EventManager struct {
	broker   Broker
	handlers map[stripe.EventType]EventHandler
	logger   *zap.Logger
}

func NewEventManager(broker Broker, logger *zap.Logger) *EventManager {
	return &EventManager{
		broker:   broker,
		handlers: make(map[stripe.EventType]EventHandler),
		logger:   logger,
	}
}

func (em *EventManager) RegisterHandler(eventType stripe.EventType, handler EventHandler) {
	em.handlers[eventType] = handler
}

func (em *EventManager) GetHandler(eventType stripe.EventType) (EventHandler, bool) {
	handler, exists := em.handlers[eventType]
	return handler, exists
}

func EventSubject(eventType stripe.EventType) string {
	return eventSubjectPrefix + string(eventType)
}

func (em *EventManager) PublishEvent(event *stripe.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = em.broker.Publish(EventSubject(event.Type), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// SubscribeToEvents feeds every published Stripe event into the worker pool.
// Submission blocks while the queue is full, which holds back delivery from the broker.
func (em *EventManager) SubscribeToEvents(wp *WorkerPool) error {
	_, err := em.broker.Subscribe(eventSubjectAll, func(msg *nats.Msg) {
		var event stripe.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			em.logger.Error("Failed to unmarshal event",
				zap.String("subject", msg.Subject),
				zap.Error(err))
			return
		}

		if err := wp.Submit(context.Background(), &event); err != nil {
			em.logger.Error("Failed to submit event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}
	return nil
}

func (sb *StripeBilling) registerEventHandlers() {

	eventHandlers := map[stripe.EventType]EventHandler{
		stripe.EventTypeSetupIntentCreated:        sb.handleSetupIntentEvent,
		stripe.EventTypeSetupIntentRequiresAction: sb.handleSetupIntentEvent,
		stripe.EventTypeSetupIntentSetupFailed:    sb.handleSetupIntentEvent,
		stripe.EventTypeSetupIntentSucceeded:      sb.handleSetupIntentEvent,
		stripe.EventTypeSetupIntentCanceled:       sb.handleSetupIntentEvent,
	}

	for eventType, handler := range eventHandlers {
		sb.eventManager.RegisterHandler(eventType, handler)
	}
}
