package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/billing"
	"goflare.io/billing/models/enum"
	"goflare.io/billing/setup_intent"
)

type SetupIntentHandler interface {
	GetSetupIntent(c echo.Context) error
	ListSetupIntents(c echo.Context) error
}

type setupIntentHandler struct {
	Billing billing.Billing
	logger  *zap.Logger
}

func NewSetupIntentHandler(
	Billing billing.Billing,
	logger *zap.Logger,
) SetupIntentHandler {
	return &setupIntentHandler{
		Billing: Billing,
		logger:  logger,
	}
}

type listSetupIntentsRequest struct {
	CustomerID string `query:"customer"`
	Status     string `query:"status" validate:"omitempty,setup_intent_status"`
	Limit      uint64 `query:"limit" validate:"lte=100"`
	Offset     uint64 `query:"offset" validate:"lte=2147483647"`
}

// GetSetupIntent handles GET /setup_intents/:id
func (sh *setupIntentHandler) GetSetupIntent(c echo.Context) error {
	id := c.Param("id")

	setupIntent, err := sh.Billing.GetSetupIntent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, setup_intent.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Setup intent not found"})
		}
		sh.logger.Error("Failed to get setup intent", zap.String("setup_intent_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get setup intent"})
	}

	return c.JSON(http.StatusOK, setupIntent)
}

// ListSetupIntents handles GET /setup_intents
func (sh *setupIntentHandler) ListSetupIntents(c echo.Context) error {
	var req listSetupIntentsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	list, err := sh.Billing.ListSetupIntents(c.Request().Context(), setup_intent.ListParams{
		CustomerID: req.CustomerID,
		Status:     enum.SetupIntentStatus(req.Status),
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		if errors.Is(err, setup_intent.ErrInvalidListParams) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		sh.logger.Error("Failed to list setup intents", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list setup intents"})
	}

	return c.JSON(http.StatusOK, list)
}
