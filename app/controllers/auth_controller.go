package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/internal/pkg/session"
)

// HandleLogout destroys the app session and sends the user home.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("logout failed")
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
