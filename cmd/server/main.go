package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/minimalpairs/internal/api"
	"github.com/vytor/minimalpairs/internal/config"
	"github.com/vytor/minimalpairs/internal/db"
	"github.com/vytor/minimalpairs/internal/items"
	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/repository/sqlite"
	"github.com/vytor/minimalpairs/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Minimal Pairs Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("data_url=%s", cfg.DataURL)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("load_workers=%d", cfg.LoadWorkers)
	log.Debug("storage_key=%s", cfg.StorageKey)
	log.Debug("random_seed=%d", cfg.RandomSeed)

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
	defer cancel()

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load items
	var source items.Source
	if cfg.DataURL != "" {
		log.Info("loading items from %s", cfg.DataURL)
		source = items.NewHTTPSource(cfg.DataURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	} else {
		log.Info("loading items from directory %s", cfg.DataDir)
		source = items.NewFSSource(os.DirFS(cfg.DataDir))
	}
	store := items.NewLoader(source, cfg.LoadWorkers).Load(ctx)
	if store.Len() == 0 {
		log.Warn("no items loaded, the quiz will stay empty")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	// Initialize services
	quizService := services.NewQuizService(ctx, store,
		sqlite.NewProgressRepository(database.DB, cfg.StorageKey),
		sqlite.NewHistoryRepository(database.DB),
		rng, nil)

	srv := &api.Server{
		Quiz:           quizService,
		DB:             database,
		RequestTimeout: 10 * time.Second,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Minimal Pairs Server Stopped")
	log.Info("===========================================")
}
