package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/robomover/api/internal/config"
	"github.com/robomover/api/internal/database"
	"github.com/robomover/api/internal/maps"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/service"
	"github.com/robomover/api/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	requestsRepo := repository.NewPGXMovingRequestsRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)
	inquiriesRepo := repository.NewPGXInquiriesRepository(pool)

	mapsClient := maps.NewClient(nil, cfg.MapsBaseURL, cfg.MapsAPIKey)
	discovery := service.NewDiscoveryService(requestsRepo, companiesRepo, inquiriesRepo, mapsClient)

	worker, err := tasks.NewWorker(cfg.RedisURL, cfg.DiscoveryQueue, cfg.DiscoveryWorkers, discovery)
	if err != nil {
		log.Fatalf("failed to start task worker: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("discovery worker started queue=%s concurrency=%d", cfg.DiscoveryQueue, cfg.DiscoveryWorkers)
	if err := worker.Run(ctx); err != nil {
		log.Fatalf("task worker stopped: %v", err)
	}
}
