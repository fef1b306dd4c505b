package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/cordial-ai/cordial/app/controllers"
	"github.com/cordial-ai/cordial/app/repository"
	"github.com/cordial-ai/cordial/internal/pkg/usercontext"
)

// Pong is the ping endpoint response
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the versioned API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches the v1 routes to the given group. Protected
// routes run behind the supplied auth middleware.
func RegisterHandlers(v1 fiber.Router, s *APIServer, requireAuth fiber.Handler) {
	v1.Get("/ping", s.GetPing)
	v1.Get("/account", requireAuth, s.GetAccount)
	v1.Get("/credits", requireAuth, controllers.HandleGetCredits)
	v1.Post("/credits/claim", requireAuth, controllers.HandleClaimDailyCredits)
	v1.Post("/chat", requireAuth, controllers.HandleChat)
	v1.Post("/generate-reply", requireAuth, controllers.HandleGenerateReply)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetAccount returns account information for the authenticated user.
func (s *APIServer) GetAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetAccountRepository()
	account, err := repo.GetByEmail(userCtx.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Account not found"})
	}

	var lastLogin interface{}
	if account.LastLoginAt != nil {
		lastLogin = account.LastLoginAt.UTC().Format(time.RFC3339)
	}
	var lastClaim interface{}
	if account.LastDailyClaim != nil {
		lastClaim = account.LastDailyClaim.UTC().Format(time.RFC3339)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":               account.ID,
		"email":            account.Email,
		"name":             account.Name,
		"status":           account.Status,
		"credit_balance":   account.CreditBalance,
		"generation_count": account.GenerationCount,
		"created_at":       account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":    lastLogin,
		"last_daily_claim": lastClaim,
	})
}
