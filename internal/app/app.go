// Package app wires configuration, storage, services and the HTTP router
// into a runnable application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/application/service"
	"github.com/sangkips/invoice-ticket-api/internal/config"
	domainRepo "github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/jobs"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/repository"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/handler"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/middleware"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/routes"
	"github.com/sangkips/invoice-ticket-api/pkg/printer"
	"github.com/sangkips/invoice-ticket-api/pkg/utils"
	"gorm.io/gorm"
)

// App holds the wired application
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger

	Auth     *service.AuthService
	Invoices *service.InvoiceService
	Tickets  *service.TicketService
	Printing *service.PrinterService

	IdempotencyRepo domainRepo.IdempotencyRepository
	Cleanup         *jobs.IdempotencyCleanup
	RateLimiter     *middleware.RateLimiter
	Router          *gin.Engine
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func NewLogger(cfg *config.AppConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.Env == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// New wires every component on top of an open, migrated database.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	location := cfg.Ticket.Location()
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, txManager, location, logger)
	ticketService := service.NewTicketService(invoiceRepo, service.TicketOptions{
		Width:       cfg.Ticket.Width,
		FooterWidth: cfg.Ticket.FooterWidth,
		Location:    location,
	}, logger)

	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn("failed to initialize printer, printing disabled", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, ticketService, logger)

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Invoice: handler.NewInvoiceHandler(invoiceService, ticketService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFromWindow(
		cfg.RateLimit.Requests, cfg.RateLimit.Duration))

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          logger,
	})

	return &App{
		Config:          cfg,
		DB:              db,
		Logger:          logger,
		Auth:            authService,
		Invoices:        invoiceService,
		Tickets:         ticketService,
		Printing:        printerService,
		IdempotencyRepo: idempotencyRepo,
		Cleanup:         jobs.NewIdempotencyCleanup(idempotencyRepo, cfg.Idempotency.CleanupSchedule, logger),
		RateLimiter:     rateLimiter,
		Router:          router,
	}
}

// Close stops the background goroutines started by New and Cleanup.Start.
func (a *App) Close() {
	a.RateLimiter.Stop()
	a.Cleanup.Stop()
}
