package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/config"
	domainRepo "github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/handler"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/middleware"
	"github.com/sangkips/invoice-ticket-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Invoice *handler.InvoiceHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Logger          *slog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.RegisterValidatorTagNames()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/health")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group(deps.Cfg.App.APIPrefix)
	{
		// Public routes (no authentication required)
		registerPublicRoutes(api, h)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerPublicRoutes(api *gin.RouterGroup, h *Handlers) {
	api.POST("/user/register", h.Auth.Register)
	api.POST("/auth/jwt/login", h.Auth.Login)
	api.GET("/invoice/:invoice_id", h.Invoice.GetText)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/user/details", h.Auth.GetDetails)

	invoices := protected.Group("/invoice")
	{
		invoices.POST("/create", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			TTL:    deps.Cfg.Idempotency.TTL,
			Logger: deps.Logger,
		}), h.Invoice.Create)
		invoices.GET("/retrieve", h.Invoice.Retrieve)
		invoices.POST("/:invoice_id/print", h.Printer.PrintInvoice)
	}

	protected.GET("/printer/status", h.Printer.GetStatus)
}
