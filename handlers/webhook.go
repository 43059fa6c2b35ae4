package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/billing"
	"goflare.io/ignite"
)

// Stripe caps webhook payloads well below this.
const maxWebhookBodySize = 1 << 20

var bufferType = reflect.TypeOf(&bytes.Buffer{})

type WebhookHandler interface {
	HandleStripeWebhook(c echo.Context) error
}

type webhookHandler struct {
	Billing     billing.Billing
	poolManager ignite.Manager
	logger      *zap.Logger
}

func NewWebhookHandler(
	Billing billing.Billing,
	poolManager ignite.Manager,
	logger *zap.Logger,
) (WebhookHandler, error) {
	if err := poolManager.RegisterPool(bufferType, ignite.Config[any]{
		InitialSize: 8,
		MaxSize:     128,
		MaxIdleTime: 10 * time.Minute,
		Factory: func() (any, error) {
			return new(bytes.Buffer), nil
		},
		Reset: func(obj any) error {
			obj.(*bytes.Buffer).Reset()
			return nil
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to register buffer pool: %w", err)
	}

	return &webhookHandler{
		Billing:     Billing,
		poolManager: poolManager,
		logger:      logger,
	}, nil
}

// HandleStripeWebhook handles POST /webhook
func (wh *webhookHandler) HandleStripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	pool, err := wh.poolManager.GetPool(bufferType)
	if err != nil {
		wh.logger.Error("Failed to get buffer pool", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to handle webhook"})
	}

	objWrapper, err := pool.Get(ctx)
	if err != nil {
		wh.logger.Error("Failed to get buffer from pool", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to handle webhook"})
	}
	defer pool.Put(objWrapper)

	buf := objWrapper.Object.(*bytes.Buffer)
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBodySize)
	if _, err = buf.ReadFrom(body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "Request body too large"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read request body"})
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	err = wh.Billing.HandleStripeWebhook(ctx, buf.Bytes(), signature)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, billing.ErrInvalidSignature):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid webhook signature"})
	default:
		wh.logger.Error("Failed to handle webhook", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to handle webhook"})
	}
}
