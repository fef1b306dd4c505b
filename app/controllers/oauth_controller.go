package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/cordial-ai/cordial/app/repository"
	"github.com/cordial-ai/cordial/internal/pkg/session"
	"github.com/cordial-ai/cordial/internal/pkg/usercontext"
)

// HandleOAuthCallback completes the provider flow and logs the user in
func HandleOAuthCallback(c *fiber.Ctx) error {
	// Complete OAuth with provider and obtain unified user
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	if u.Email == "" {
		return c.Status(fiber.StatusBadRequest).SendString("OAuth provider returned no email address")
	}

	// Provision or refresh the account. First contact seeds the signup
	// grant; later logins only update informational fields.
	account, err := appLedger.EnsureAccount(c.UserContext(), u.Email, firstNonEmpty(u.Name, u.NickName, u.Email), u.AvatarURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("account provisioning failed: %v", err))
	}

	// Create app session
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, account.ID)
	sess.Set(usercontext.KeyEmail, account.Email)
	sess.Set(usercontext.KeyUsername, account.Name)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	// Update last login timestamp
	repo := repository.GetGlobalFactory().GetAccountRepository()
	_ = repo.UpdateLastLogin(account.Email, time.Now())

	return c.Redirect("/", fiber.StatusSeeOther)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
