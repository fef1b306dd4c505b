package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/internal/pkg/generation"
	"github.com/cordial-ai/cordial/internal/pkg/metrics/counter"
	"github.com/cordial-ai/cordial/internal/pkg/usercontext"
)

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type generateReplyRequest struct {
	EmailContent string `json:"email_content"`
	Subject      string `json:"subject"`
	Tone         string `json:"tone"`
}

// HandleChat rewrites the user's message in the requested mode. Costs one
// credit; failed generations are refunded by the gate.
func HandleChat(c *fiber.Ctx) error {
	email, ok := requireEmail(c)
	if !ok {
		return nil
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Request body must be valid JSON",
		})
	}

	mode := req.Mode
	if mode == "" {
		mode = generation.DefaultRewriteMode
	}

	out, err := appGate.RewriteMessage(c.UserContext(), email, req.Message, mode)
	if err != nil {
		return mapServiceError(c, err)
	}

	if userID := usercontext.GetUserID(c); userID != 0 {
		_ = counter.AddGeneration(userID)
	}

	return c.JSON(fiber.Map{
		"response":          out.Text,
		"mode":              mode,
		"credits_remaining": out.CreditsRemaining,
	})
}

// HandleGenerateReply drafts an email reply in the requested tone. Costs
// one credit; failed generations are refunded by the gate.
func HandleGenerateReply(c *fiber.Ctx) error {
	email, ok := requireEmail(c)
	if !ok {
		return nil
	}

	var req generateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_input",
			"message": "Request body must be valid JSON",
		})
	}

	tone := req.Tone
	if tone == "" {
		tone = generation.DefaultReplyTone
	}

	out, err := appGate.GenerateReply(c.UserContext(), email, req.EmailContent, req.Subject, tone)
	if err != nil {
		return mapServiceError(c, err)
	}

	if userID := usercontext.GetUserID(c); userID != 0 {
		_ = counter.AddGeneration(userID)
	}

	return c.JSON(fiber.Map{
		"reply":             out.Text,
		"tone":              tone,
		"credits_remaining": out.CreditsRemaining,
	})
}
