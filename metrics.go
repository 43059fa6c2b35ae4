package billing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stripe/stripe-go/v79"
)

const (
	OutcomeAccepted         = "accepted"
	OutcomeDuplicate        = "duplicate"
	OutcomeIgnored          = "ignored"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeSuccess          = "success"
	OutcomeError            = "error"
)

type Metrics struct {
	webhookEvents   *prometheus.CounterVec
	eventsProcessed *prometheus.CounterVec
}

// NewMetrics registers the billing counters with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billing",
			Name:      "webhook_events_total",
			Help:      "Stripe webhook deliveries by outcome.",
		}, []string{"outcome"}),
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billing",
			Name:      "events_processed_total",
			Help:      "Stripe events processed by the worker pool.",
		}, []string{"event_type", "outcome"}),
	}

	if reg != nil {
		reg.MustRegister(m.webhookEvents, m.eventsProcessed)
	}
	return m
}

func (m *Metrics) WebhookReceived(outcome string) {
	m.webhookEvents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EventProcessed(eventType stripe.EventType, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.eventsProcessed.WithLabelValues(string(eventType), outcome).Inc()
}
