package billing

import (
	"context"

	"github.com/stripe/stripe-go/v79"

	"goflare.io/billing/models"
	"goflare.io/billing/setup_intent"
)

type Billing interface {
	GetSetupIntent(ctx context.Context, setupIntentID string) (*models.SetupIntent, error)
	ListSetupIntents(ctx context.Context, params setup_intent.ListParams) (*models.SetupIntentList, error)

	// HandleStripeWebhook verifies a webhook delivery and queues it for processing.
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
	ProcessEvent(ctx context.Context, event *stripe.Event) error

	Close()
}
