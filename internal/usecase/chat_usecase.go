package usecase

import (
	"context"
)

// ChatInput is a shopper's question for the assistant.
type ChatInput struct {
	Question string `json:"question" validate:"required"`
}

// ChatOutput is the assistant's reply. Source reports which responder
// produced it so the storefront can label degraded answers.
type ChatOutput struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}

// ChatUsecase answers shopper questions grounded in the current catalog,
// falling back to a local responder when the hosted model is unavailable.
type ChatUsecase interface {
	Ask(ctx context.Context, input *ChatInput) (*ChatOutput, error)
}
