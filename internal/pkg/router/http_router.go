package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordial-ai/cordial/app/controllers"
	"github.com/cordial-ai/cordial/app/repository"
	"github.com/cordial-ai/cordial/internal/pkg/database"
	"github.com/cordial-ai/cordial/internal/pkg/generation"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
	"github.com/cordial-ai/cordial/internal/pkg/middleware"
	"github.com/cordial-ai/cordial/internal/pkg/oauth"
	"github.com/cordial-ai/cordial/internal/pkg/payments"
	"github.com/cordial-ai/cordial/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire controllers to their backing services
	db := database.GetDB()
	repository.InitializeFactory(db)

	l := ledger.New(repository.NewLedgerStore(db), ledger.ConfigFromEnv())
	gate := generation.NewGate(l, generation.NewOpenAIClientFromEnv(), generation.GateConfigFromEnv())
	controllers.Initialize(l, gate, payments.NewServiceFromEnv(l), payments.NewCheckoutClientFromEnv())

	h.registerPublicRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	// All user information is available via usercontext.GetUserContext(c)
	return c.Next()
}
