package usecase

import (
	"context"
)

// EventResult reports what the receiver did with a verified event.
type EventResult struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

// Event outcomes.
const (
	EventOutcomeRecorded = "recorded"
	EventOutcomeIgnored  = "ignored"
)

// PaymentEventUsecase is the webhook entry point. It authenticates the raw
// payload against the provider signature, fetches session details for
// completed checkouts and hands them to the order recorder.
type PaymentEventUsecase interface {
	HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (*EventResult, error)
}
