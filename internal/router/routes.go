package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robomover/api/internal/auth"
	"github.com/robomover/api/internal/config"
	"github.com/robomover/api/internal/handler"
	middlewarepkg "github.com/robomover/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserAdminHandler
	Requests  *handler.MovingRequestsHandler
	Companies *handler.CompaniesHandler
	Inquiries *handler.InquiriesHandler
	Calls     *handler.CallsHandler
	Webhook   *handler.WebhookHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	// The provider cannot present a JWT; the webhook carries its own secret.
	e.POST("/vapi_webhook_report", handlers.Webhook.Report)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/get_moving_companies", handlers.Requests.Submit, middlewarepkg.DiscoveryRateLimiter(cfg.RateLimitDiscovery))
	secured.POST("/call_moving_companies", handlers.Calls.Dispatch)

	secured.GET("/moving_requests", handlers.Requests.List)
	secured.GET("/moving_requests/:id", handlers.Requests.Get)
	secured.PATCH("/moving_requests/:id", handlers.Requests.Update)
	secured.DELETE("/moving_requests/:id", handlers.Requests.Delete)
	secured.GET("/moving_requests/:id/inquiries", handlers.Requests.ListInquiries)

	secured.GET("/moving_companies", handlers.Companies.List)
	secured.GET("/moving_companies/:id", handlers.Companies.Get)
	secured.DELETE("/moving_companies/:id", handlers.Companies.Delete)

	secured.GET("/inquiries/:id", handlers.Inquiries.Get)

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
