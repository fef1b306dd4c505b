package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/internal/pkg/usercontext"
)

// HandleStart renders the landing page.
func HandleStart(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	return c.Render("index", fiber.Map{
		"Title":      "Cordial",
		"IsLoggedIn": userCtx.IsLoggedIn,
		"Username":   userCtx.Username,
		"Email":      userCtx.Email,
	})
}
