package payments

import (
	"context"
	"fmt"

	"github.com/cordial-ai/cordial/internal/pkg/env"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
)

// Service guards the webhook path: it authenticates deliveries, maps them
// to payment events and hands them to the ledger, which applies each
// event id at most once.
type Service struct {
	ledger *ledger.Ledger
	secret string
}

// NewService creates a payments service from an injected ledger.
func NewService(l *ledger.Ledger, webhookSecret string) *Service {
	return &Service{ledger: l, secret: webhookSecret}
}

// NewServiceFromEnv creates a payments service configured from the environment.
func NewServiceFromEnv(l *ledger.Ledger) *Service {
	return NewService(l, env.GetEnv("PAYMENT_WEBHOOK_SECRET", ""))
}

// HandleWebhook processes one delivery. Signature failures are rejected
// outright; recognized events are applied idempotently through the
// ledger, so at-least-once delivery never credits twice.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (Result, error) {
	if !VerifySignature(payload, signatureHeader, s.secret) {
		return Result{}, ErrInvalidSignature
	}

	event, err := ParseEvent(payload)
	if err != nil {
		return Result{}, err
	}

	if event.EventType != eventTypeCheckoutCompleted {
		return Result{Ignored: true}, nil
	}
	if event.Email == "" || event.Credits <= 0 {
		return Result{}, fmt.Errorf("%w: completed checkout without email or credits", ErrInvalidPayload)
	}

	balance, applied, err := s.ledger.ApplyPayment(ctx, event)
	if err != nil {
		return Result{}, err
	}
	return Result{Applied: applied, NewBalance: balance}, nil
}
