package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/app/models"
	"github.com/cordial-ai/cordial/app/repository"
	"github.com/cordial-ai/cordial/internal/pkg/hcaptcha"
)

type waitlistRequest struct {
	Email        string `json:"email"`
	CaptchaToken string `json:"captcha_token"`
}

// HandleWaitlist records a pre-launch signup. Duplicate emails are
// acknowledged without creating a second entry.
func HandleWaitlist(c *fiber.Ctx) error {
	var req waitlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Request body must be valid JSON",
		})
	}

	if hcaptcha.Enabled() {
		if ok, err := hcaptcha.Verify(req.CaptchaToken); err != nil || !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "captcha_failed",
				"message": "Captcha verification failed",
			})
		}
	}

	entry := &models.WaitlistEntry{Email: req.Email}
	if err := entry.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "A valid email address is required",
		})
	}

	repo := repository.GetGlobalFactory().GetWaitlistRepository()
	added, err := repo.Add(entry)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Could not save waitlist entry",
		})
	}

	if !added {
		return c.JSON(fiber.Map{
			"message": "already on waitlist",
		})
	}
	return c.JSON(fiber.Map{
		"message": "added to waitlist",
	})
}
