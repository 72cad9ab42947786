// board-service
//
// Backend-for-frontend for the job-board web client. Owns the client-side
// logic the front-end needs:
//   - filter draft/apply sessions and listing query building
//   - listing fetch + normalization against the remote board API
//   - per-identity recently-viewed notice cache (Redis)
//   - application-intent cache with apply/cancel state machine (Redis)
//   - optional cron sweeper reconciling cached intents against the server
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/config"
	"workbee/board-service/internal/db"
	"workbee/board-service/internal/filter"
	"workbee/board-service/internal/intent"
	"workbee/board-service/internal/listing"
	"workbee/board-service/internal/recent"
	"workbee/board-service/internal/reconcile"
	"workbee/board-service/internal/server"
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("[board-service] No .env file — using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[board-service] Config error: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[board-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[board-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[board-service] Redis connected ✓")

	// ── Components ───────────────────────────────────────────────────────────
	api := boardapi.NewClient(cfg.BoardAPIBaseURL)
	sessions := filter.NewSessions()
	controller := listing.NewController(api, logger)
	recentCache := recent.NewCache(recent.NewRedisStore(rdb), api, logger)
	intentCache := intent.NewCache(rdb, logger)
	intents := intent.NewService(api, intentCache, logger)

	// ── Reconciler (optional) ────────────────────────────────────────────────
	if cfg.ReconcileIntervalHours > 0 {
		rec := reconcile.New(rdb, api, cfg.ReconcileIntervalHours)
		if err := rec.Start(ctx); err != nil {
			log.Fatalf("[board-service] Reconciler: %v", err)
		}
		defer rec.Stop()
	} else {
		log.Println("[board-service] Intent reconciler disabled")
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	h := server.NewHandler(sessions, controller, recentCache, intents, api, logger, cfg.PageLimit)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      server.WithRequestLog(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("[board-service] Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[board-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[board-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[board-service] Shutdown error: %v", err)
	}
	log.Println("[board-service] Stopped.")
}
