package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverymiddleware "darkstore/internal/delivery/http/middleware"
	"darkstore/internal/delivery/http/validator"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEcho mirrors the production server wiring for handler tests.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliverymiddleware.NewErrorMiddleware(testLogger()).HandleHTTPError

	return e
}

// stubEventUsecase records what the handler passed through.
type stubEventUsecase struct {
	gotPayload   []byte
	gotSignature string
	result       *usecase.EventResult
	err          error
}

func (s *stubEventUsecase) HandleEvent(_ context.Context, payload []byte, signatureHeader string) (*usecase.EventResult, error) {
	s.gotPayload = payload
	s.gotSignature = signatureHeader
	if s.err != nil {
		return nil, s.err
	}

	return s.result, nil
}

func TestHandlePaymentEvent_PassesRawPayloadThrough(t *testing.T) {
	stub := &stubEventUsecase{result: &usecase.EventResult{Received: true, Outcome: usecase.EventOutcomeRecorded}}
	h := NewWebhookHandler(stub, testLogger())
	e := newTestEcho()

	body := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(body))
	req.Header.Set(HeaderPaymentSignature, "t=1,v1=abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandlePaymentEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, string(stub.gotPayload), "signature covers the exact wire bytes")
	assert.Equal(t, "t=1,v1=abc", stub.gotSignature)
	assert.Contains(t, rec.Body.String(), `"received":true`)
	assert.Contains(t, rec.Body.String(), `"outcome":"recorded"`)
}

func TestHandlePaymentEvent_SignatureFailureRendersBadRequest(t *testing.T) {
	stub := &stubEventUsecase{err: domainerrors.ErrSignatureInvalid}
	h := NewWebhookHandler(stub, testLogger())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandlePaymentEvent(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SIGNATURE_INVALID")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHandlePaymentEvent_ProcessingFailureRendersServerError(t *testing.T) {
	stub := &stubEventUsecase{err: domainerrors.ErrEventProcessingFailed}
	h := NewWebhookHandler(stub, testLogger())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandlePaymentEvent(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "EVENT_PROCESSING_FAILED")
}
