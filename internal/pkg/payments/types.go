package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cordial-ai/cordial/app/models"
)

const eventTypeCheckoutCompleted = "checkout.session.completed"

var (
	// ErrInvalidSignature rejects deliveries that fail authenticity
	// verification. These are dropped before any store contact.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrInvalidPayload rejects deliveries whose body cannot be mapped to
	// a payment event.
	ErrInvalidPayload = errors.New("invalid webhook payload")
)

// Result reports the outcome of one webhook delivery.
type Result struct {
	// Applied is false for replayed deliveries and ignored event types.
	Applied bool
	// Ignored marks event types that carry no credits.
	Ignored bool
	// NewBalance is the account balance after processing.
	NewBalance int64
}

type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			CustomerEmail string            `json:"customer_email"`
			Metadata      map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent maps a raw provider webhook body to a payment event record.
func ParseEvent(payload []byte) (*models.PaymentEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(env.ID) == "" {
		return nil, fmt.Errorf("%w: missing event id", ErrInvalidPayload)
	}

	event := &models.PaymentEvent{
		EventID:     strings.TrimSpace(env.ID),
		EventType:   strings.TrimSpace(env.Type),
		Email:       strings.TrimSpace(env.Data.Object.CustomerEmail),
		PayloadJSON: string(payload),
	}

	if raw, ok := env.Data.Object.Metadata["credits"]; ok {
		credits, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad credits value %q", ErrInvalidPayload, raw)
		}
		event.Credits = credits
	}

	return event, nil
}
