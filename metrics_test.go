package billing

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func TestMetricsRegistersCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.WebhookReceived(OutcomeAccepted)
	metrics.WebhookReceived(OutcomeAccepted)
	metrics.EventProcessed(stripe.EventTypeSetupIntentSucceeded, nil)
	metrics.EventProcessed(stripe.EventTypeSetupIntentSucceeded, errors.New("boom"))

	families, err := registry.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		byName[family.GetName()] = family
	}

	webhooks := byName["billing_webhook_events_total"]
	require.NotNil(t, webhooks)
	require.Len(t, webhooks.GetMetric(), 1)
	assert.Equal(t, 2.0, webhooks.GetMetric()[0].GetCounter().GetValue())

	processed := byName["billing_events_processed_total"]
	require.NotNil(t, processed)
	assert.Len(t, processed.GetMetric(), 2)
}

func TestNewMetricsWithoutRegistry(t *testing.T) {
	metrics := NewMetrics(nil)
	assert.NotPanics(t, func() { metrics.WebhookReceived(OutcomeIgnored) })
}
