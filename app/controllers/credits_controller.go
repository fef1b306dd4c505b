package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleGetCredits returns the caller's spendable credit balance.
func HandleGetCredits(c *fiber.Ctx) error {
	email, ok := requireEmail(c)
	if !ok {
		return nil
	}

	balance, err := appLedger.Balance(c.UserContext(), email)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"credits": balance,
	})
}

// HandleClaimDailyCredits issues the daily grant once per claim window.
func HandleClaimDailyCredits(c *fiber.Ctx) error {
	email, ok := requireEmail(c)
	if !ok {
		return nil
	}

	granted, newTotal, err := appLedger.ClaimDailyGrant(c.UserContext(), email)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"credits_added": granted,
		"new_total":     newTotal,
	})
}
