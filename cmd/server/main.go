package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/adapters/chat"
	router "github.com/edulive/lecturechat/internal/adapters/http"
	"github.com/edulive/lecturechat/internal/app"
	"github.com/edulive/lecturechat/internal/auth"
	"github.com/edulive/lecturechat/internal/config"
	"github.com/edulive/lecturechat/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	identities, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open identity store")
	}
	if cfg.SeedUsers {
		seedDevUsers(ctx, identities, cfg.Secret)
	}

	verifier := auth.NewVerifier(cfg.Secret, identities)
	reg := app.NewRegistry()
	rooms := app.NewRoomManager(cfg.HistorySize)
	orch := &app.Orchestrator{Registry: reg, Rooms: rooms}
	limiter := chat.NewMessageRateLimiter(cfg.RateLimit, cfg.RateWindow)
	ctrl := chat.NewChatWSController(orch, verifier, limiter, cfg.ReadLimit, cfg.PingPeriod)

	r := router.SetupRouter(ctx, cfg, ctrl, rooms)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("lecture chat server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}

// seedDevUsers provisions a couple of accounts and prints ready-to-use
// tokens, so a dev setup works without the account subsystem running.
func seedDevUsers(ctx context.Context, identities *store.Store, secret string) {
	seeds := []struct {
		username, phone, email, image string
	}{
		{"asha", "9000000001", "asha@example.com", "/static/avatars/asha.png"},
		{"ravi", "9000000002", "ravi@example.com", "/static/avatars/ravi.png"},
	}
	for _, s := range seeds {
		identity, err := identities.SeedUser(ctx, s.username, s.phone, s.email, s.image, "password123")
		if err != nil {
			log.Error().Err(err).Str("username", s.username).Msg("seed user")
			continue
		}
		token, err := auth.Issue(secret, identity.ID, time.Hour)
		if err != nil {
			log.Error().Err(err).Str("username", s.username).Msg("issue dev token")
			continue
		}
		log.Info().Str("username", s.username).Str("token", token).Msg("dev token")
	}
}
