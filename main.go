package main

import (
	"flag"
	"os"
	"sync"
	"time"

	"github.com/danokoye/athenaeum/config"
	"github.com/danokoye/athenaeum/handler"
	"github.com/danokoye/athenaeum/internal/clock"
	"github.com/danokoye/athenaeum/internal/jsonlog"
	"github.com/danokoye/athenaeum/repository"
	"github.com/danokoye/athenaeum/repository/postgres"
	"github.com/danokoye/athenaeum/service"
	"github.com/jellydator/ttlcache/v3"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title  Athenaeum API
// @version 1.0.0
// @description This is an API service for managing a library's catalogue, members and book loans.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (optional)")
	flag.Parse()
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Other shared resources: waitgroup and in-memory cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, int64](30 * time.Minute))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo, clock.Real{})
	handler := handler.New(cfg, logger, cache, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Periodic sweeps for overdue and soon-due loans
	app.startLoanSweeps(logger)

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// startLoanSweeps runs the overdue and due-soon notification sweeps on a
// ticker. The interval comes from the loans configuration section.
func (a *app) startLoanSweeps(logger *jsonlog.Logger) {
	interval, err := time.ParseDuration(a.config.Loans.SweepInterval)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := a.service.NotifyOverdueLoans(); err != nil {
				logger.PrintError(err, map[string]string{"sweep": "overdue"})
			}
			if err := a.service.NotifyUpcomingDueLoans(); err != nil {
				logger.PrintError(err, map[string]string{"sweep": "due_soon"})
			}
		}
	}()
}
