package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "darkstore/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequestID(t *testing.T, clientID string) (*httptest.ResponseRecorder, echo.Context, context.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if clientID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, clientID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var seenCtx context.Context
	handler := mw.Process(func(c echo.Context) error {
		seenCtx = c.Request().Context()

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, c, seenCtx
}

func TestProcess_KeepsClientRequestID(t *testing.T) {
	rec, c, _ := runRequestID(t, "req-42")

	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "req-42", deliverycontext.GetRequestID(c))
}

func TestProcess_GeneratesRequestIDWhenAbsent(t *testing.T) {
	rec, c, _ := runRequestID(t, "")

	generated := rec.Header().Get(deliverycontext.HeaderXRequestID)
	require.NotEmpty(t, generated)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, deliverycontext.GetRequestID(c))
}

func TestProcess_InstallsRequestScopedLogger(t *testing.T) {
	_, _, seenCtx := runRequestID(t, "req-42")

	require.NotNil(t, seenCtx)
	assert.NotNil(t, deliverycontext.GetLogger(seenCtx),
		"service layer must see the request-scoped logger")

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.NotSame(t, fallback, deliverycontext.GetLoggerOrDefault(seenCtx, fallback))
}
