package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/zoinkies/internal/config"
	"github.com/jwebster45206/zoinkies/internal/handlers"
	"github.com/jwebster45206/zoinkies/internal/logger"
	"github.com/jwebster45206/zoinkies/internal/middleware"
	"github.com/jwebster45206/zoinkies/internal/storage"
	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/game"
	"github.com/jwebster45206/zoinkies/pkg/random"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Zoinkies API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"catalog_path", cfg.CatalogPath)

	if err := run(cfg, log); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server exited")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewRedisStorage(cfg.RedisURL, storage.Options{
		StateTTL: cfg.StateTTL,
		LockTTL:  cfg.PlayerLockTTL,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing storage connection", "error", err)
		}
	}()

	storageCtx, storageCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx, 30, 2*time.Second); err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	// A missing or broken catalog is not fatal; dependent routes answer 503.
	refs := catalog.FileSource(cfg.CatalogPath, log)
	if _, err := refs.Catalog(); err != nil {
		log.Warn("Serving without reference catalog", "error", err)
	}

	rng, err := random.NewLocked(cfg.RNGSeed)
	if err != nil {
		return err
	}
	if cfg.RNGSeed != 0 {
		log.Warn("Using a fixed RNG seed", "seed", cfg.RNGSeed)
	}

	resolver := game.NewResolver(store, store, refs, rng,
		game.WithFreedLeadersToWin(cfg.FreedLeadersToWin),
		game.WithTuning(game.Tuning{
			MinionEnergyLevel:  cfg.DefaultMinionEnergyLevel,
			GeneralEnergyLevel: cfg.DefaultGeneralEnergyLevel,
		}),
		game.WithLogger(log),
	)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, refs, log))
	mux.Handle("/v1/references", handlers.NewReferenceHandler(refs, log))
	handlers.NewGameHandler(resolver, store, log).Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Chain(mux, middleware.RequestID, middleware.Logger(log)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
