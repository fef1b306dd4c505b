package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/internal/pkg/session"
	"github.com/cordial-ai/cordial/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	// We skip our app session on /auth/* to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: set as anonymous user
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	// Get user ID from session
	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	// User is logged in - get additional data
	email := session.GetSessionValue(c, usercontext.KeyEmail)
	username := session.GetSessionValue(c, usercontext.KeyUsername)

	// Set complete user context
	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Email:      email,
		Username:   username,
		IsLoggedIn: true,
	}
	c.Locals("USER_CONTEXT", userCtx)

	// Legacy compatibility - keep existing Locals for backward compatibility
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyEmail, email)
	c.Locals(usercontext.KeyUserID, userID.(uint))

	return c.Next()
}
