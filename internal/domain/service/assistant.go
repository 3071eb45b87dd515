package service

import (
	"context"

	"darkstore/internal/domain/entity"
)

// ChatAnswer is a reply from the shopping assistant. Source names the
// responder that produced it ("model" or "local").
type ChatAnswer struct {
	Answer string
	Source string
}

// AssistantService answers shopper questions over the current catalog. The
// hosted implementation proxies to an LLM API; the local implementation is a
// keyword responder used as fallback.
type AssistantService interface {
	Answer(ctx context.Context, question string, products []*entity.Product) (*ChatAnswer, error)
}
