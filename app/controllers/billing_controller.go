package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/internal/pkg/env"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
	"github.com/cordial-ai/cordial/internal/pkg/payments"
)

type checkoutRequest struct {
	Credits int64 `json:"credits"`
}

// HandleCreateCheckoutSession opens a hosted checkout for a credit pack
// and returns its URL. Credits are only granted later, via the webhook.
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	email, ok := requireEmail(c)
	if !ok {
		return nil
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Request body must be valid JSON",
		})
	}
	if req.Credits == 0 {
		req.Credits = int64(env.GetEnvInt("CREDIT_PACK_SIZE", 20))
	}
	if req.Credits < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Credits must be positive",
		})
	}

	url, err := appCheckout.CreateSession(c.UserContext(), email, req.Credits)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "checkout_failed",
			"message": "Could not create a checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}

// HandlePaymentWebhook receives provider deliveries. The provider retries
// on non-2xx, so transient store failures return 503 while permanent
// rejections return 400 to stop the retry loop.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	signature := c.Get("X-Payment-Signature")

	result, err := appPayments.HandleWebhook(c.UserContext(), c.Body(), signature)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid_signature",
				"message": "Webhook signature verification failed",
			})
		case errors.Is(err, payments.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid_payload",
				"message": "Webhook payload is malformed",
			})
		case errors.Is(err, ledger.ErrStoreUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "store_unavailable",
				"message": "Credit store is temporarily unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Unexpected error",
		})
	}

	return c.JSON(fiber.Map{
		"received": true,
		"applied":  result.Applied,
		"ignored":  result.Ignored,
	})
}
