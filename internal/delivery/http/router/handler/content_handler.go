package handler

import (
	"net/http"

	"darkstore/config"
	"darkstore/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// storePolicies is the static policy copy rendered on the storefront. The
// wording matches what the local assistant quotes.
var storePolicies = map[string]string{
	"shipping": "Free standard shipping on orders over $50. Standard delivery takes 3-5 business days.",
	"returns":  "Any unused item can be returned within 30 days of delivery for a full refund.",
	"payment":  "Payments are processed by our hosted payment provider. We never store card details.",
}

// ContentHandler serves storefront copy (banner and policies).
type ContentHandler struct {
	cfg *config.Config
}

// NewContentHandler is the constructor for ContentHandler, injected by Fx.
func NewContentHandler(cfg *config.Config) *ContentHandler {
	return &ContentHandler{cfg: cfg}
}

// GetContent serves the configured banner plus store policies.
func (h *ContentHandler) GetContent(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"banner":   h.cfg.Content.Banner,
		"policies": storePolicies,
	}, "")
}
