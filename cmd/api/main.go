package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/robomover/api/internal/auth"
	"github.com/robomover/api/internal/config"
	"github.com/robomover/api/internal/database"
	"github.com/robomover/api/internal/handler"
	middlewarepkg "github.com/robomover/api/internal/middleware"
	"github.com/robomover/api/internal/priceextract"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/router"
	"github.com/robomover/api/internal/service"
	"github.com/robomover/api/internal/tasks"
	"github.com/robomover/api/internal/vapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	tasksClient, err := tasks.NewClient(cfg.RedisURL, cfg.DiscoveryQueue)
	if err != nil {
		log.Fatalf("failed to connect task queue: %v", err)
	}
	defer tasksClient.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	requestsRepo := repository.NewPGXMovingRequestsRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)
	inquiriesRepo := repository.NewPGXInquiriesRepository(pool)

	vapiClient := vapi.NewClient(nil, cfg.VapiBaseURL, cfg.VapiAPIKey)

	var extractor priceextract.Extractor
	if cfg.PriceExtractorURL != "" {
		extractor = priceextract.NewClient(nil, cfg.PriceExtractorURL)
	}

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	requestsService := service.NewMovingRequestsService(requestsRepo, inquiriesRepo, tasksClient)
	dispatchService := service.NewDispatchService(requestsRepo, inquiriesRepo, vapiClient, cfg.VapiAssistantID, cfg.VapiPhoneNumberID)
	webhookService := service.NewWebhookService(inquiriesRepo, extractor)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(middlewarepkg.Metrics())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserAdminHandler(userService),
		Requests:  handler.NewMovingRequestsHandler(requestsService),
		Companies: handler.NewCompaniesHandler(companiesRepo),
		Inquiries: handler.NewInquiriesHandler(inquiriesRepo),
		Calls:     handler.NewCallsHandler(dispatchService),
		Webhook:   handler.NewWebhookHandler(webhookService, cfg.VapiWebhookSecret),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
