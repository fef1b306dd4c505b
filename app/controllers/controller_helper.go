package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/internal/pkg/generation"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
	"github.com/cordial-ai/cordial/internal/pkg/payments"
	"github.com/cordial-ai/cordial/internal/pkg/usercontext"
)

// Shared service handles, wired once at router setup
var (
	appLedger   *ledger.Ledger
	appGate     *generation.Gate
	appPayments *payments.Service
	appCheckout *payments.CheckoutClient
)

// Initialize wires the controllers to their backing services. Must be
// called before any route is installed.
func Initialize(l *ledger.Ledger, gate *generation.Gate, pay *payments.Service, checkout *payments.CheckoutClient) {
	appLedger = l
	appGate = gate
	appPayments = pay
	appCheckout = checkout
}

// requireEmail resolves the authenticated account email or writes a 401.
func requireEmail(c *fiber.Ctx) (string, bool) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || userCtx.Email == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
		return "", false
	}
	return userCtx.Email, true
}

// mapServiceError translates domain errors into the stable JSON error
// contract. Unknown errors become a generic 500.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, generation.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Message is empty or too long",
		})
	case errors.Is(err, ledger.ErrInsufficientCredits):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":   "insufficient_credits",
			"message": "Not enough credits for this request",
		})
	case errors.Is(err, ledger.ErrAlreadyClaimed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "already_claimed",
			"message": "Daily credits already claimed",
		})
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "store_unavailable",
			"message": "Credit store is temporarily unavailable",
		})
	case errors.Is(err, generation.ErrGenerationTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error":   "generation_timeout",
			"message": "Generation took too long, credit refunded",
		})
	case errors.Is(err, generation.ErrGenerationFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "generation_failed",
			"message": "Generation failed, credit refunded",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_server_error",
		"message": "Unexpected error",
	})
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
