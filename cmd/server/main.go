package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaultkeep/notes-service/internal/api"
	"github.com/vaultkeep/notes-service/internal/core/hash"
	"github.com/vaultkeep/notes-service/internal/core/service"
	"github.com/vaultkeep/notes-service/internal/core/token"
	"github.com/vaultkeep/notes-service/internal/infrastructure/config"
	mongodb "github.com/vaultkeep/notes-service/internal/infrastructure/db/mongo"
	redisdb "github.com/vaultkeep/notes-service/internal/infrastructure/db/redis"
	"github.com/vaultkeep/notes-service/internal/infrastructure/queue"
	"github.com/vaultkeep/notes-service/pkg/logger"
)

// @title        VaultKeep Notes API
// @version      1.0
// @description  Multi-tenant note-keeping service with token-based authentication.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- External dependencies ---
	db, closeMongo, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = closeMongo(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := noteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("note index creation failed")
	}
	if err := userRepo.EnsureRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}
	log.Info().Msg("role reference data initialized")

	// --- Audit trail: Redis-backed, written off the request path ---
	audit := queue.NewDispatcher(0, redisdb.NewAuditTrail(rdb), log)
	audit.Start(ctx)

	// --- Core services; the signing key is injected here and nowhere else ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	hasher := hash.NewHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, codec, audit, log)
	noteService := service.NewNoteService(noteRepo, log)

	e := api.NewRouter(api.Services{Auth: authService, Notes: noteService}, codec, db, rdb, log)
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	// A failed start is reported back here rather than exiting inside the
	// goroutine, so the mongo/redis close defers still run.
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("server start failed")
		return
	case <-stop:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
