package handler

import (
	"io"
	"log/slog"
	"net/http"

	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderPaymentSignature carries the provider's payload signature.
const HeaderPaymentSignature = "Stripe-Signature"

// Payment events are small JSON documents; anything larger is not ours.
const maxEventPayloadBytes = 1 << 20

// WebhookHandler receives signed payment provider events.
type WebhookHandler struct {
	uc     usecase.PaymentEventUsecase
	logger *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler, injected by Fx.
func NewWebhookHandler(uc usecase.PaymentEventUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, logger: logger}
}

// HandlePaymentEvent verifies and processes one provider delivery. The raw
// body is passed through untouched because the signature covers the exact
// bytes on the wire.
func (h *WebhookHandler) HandlePaymentEvent(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxEventPayloadBytes))
	if err != nil {
		return domainerrors.ErrEventProcessingFailed.WrapMessage("read event payload")
	}

	signature := c.Request().Header.Get(HeaderPaymentSignature)

	result, err := h.uc.HandleEvent(c.Request().Context(), payload, signature)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, result)
}
