// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/techconf/scheduler/internal/config"
	"github.com/techconf/scheduler/internal/database"
	"github.com/techconf/scheduler/internal/handler"
	"github.com/techconf/scheduler/internal/notify"
	"github.com/techconf/scheduler/internal/repository"
	"github.com/techconf/scheduler/internal/service"
	"github.com/techconf/scheduler/internal/snapshot"
)

func main() {
	ctx := context.Background()

	// ── 1. Logging and configuration ──────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// ── 2. External collaborators ─────────────────────────────────────────
	var broadcaster notify.Broadcaster = notify.NopBroadcaster{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		broadcaster = notify.NewRedisBroadcaster(client)
		log.Info().Str("addr", cfg.RedisAddr).Msg("announcements via redis")
	}

	var snaps service.SnapshotStore
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database")
		}
		defer pool.Close()

		store := snapshot.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("snapshot schema")
		}
		snaps = store
		log.Info().Msg("snapshot persistence enabled")
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	svc := service.NewScheduler(repository.NewStore(), broadcaster)
	h := handler.NewSchedulerHandler(svc, snaps)

	if cfg.RestoreOnStart && snaps != nil {
		if err := svc.RestoreSnapshot(ctx, snaps); err != nil {
			if errors.Is(err, snapshot.ErrNoSnapshot) {
				log.Info().Msg("no snapshot to restore, starting empty")
			} else {
				log.Fatal().Err(err).Msg("restore snapshot")
			}
		}
	}

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log
	r.Use(handler.CORS)            // permissive CORS for demo

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.CreateRoom)
		r.Get("/", h.ListRooms)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Post("/party", h.CreateParty)
		r.Get("/", h.ListEvents)
		r.Delete("/{title}", h.CancelEvent)
		r.Patch("/{title}/capacity", h.ChangeCapacity)
		r.Post("/{title}/signup", h.SignUp)
		r.Delete("/{title}/signup", h.CancelSignUp)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateAccount)
		r.Get("/{username}/events", h.ListUserEvents)
		r.Get("/{username}/vip", h.GetVIP)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/snapshot", h.SaveSnapshot)
		r.Post("/restore", h.RestoreSnapshot)
	})

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("scheduler listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
