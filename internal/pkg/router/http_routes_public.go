package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/cordial-ai/cordial/app/controllers"
	"github.com/cordial-ai/cordial/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Landing page
	app.Get("/", loggedInMiddleware, controllers.HandleStart)

	// Metered generation
	app.Post("/chat", middleware.RequireAPISessionAuth, controllers.HandleChat)
	app.Post("/generate-reply", middleware.RequireAPISessionAuth, controllers.HandleGenerateReply)

	// Credits
	app.Get("/get-credits", middleware.RequireAPISessionAuth, controllers.HandleGetCredits)
	app.Post("/claim-daily-credits", middleware.RequireAPISessionAuth, controllers.HandleClaimDailyCredits)

	// Billing
	app.Post("/create-checkout-session", middleware.RequireAPISessionAuth, controllers.HandleCreateCheckoutSession)

	// Pre-launch waitlist
	app.Post("/waitlist", controllers.HandleWaitlist)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhook (no session auth, signature-verified in controller)
	app.Post("/webhooks/payment", controllers.HandlePaymentWebhook)
}
