// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/duelyard/duelyard/internal/cache"
	"github.com/duelyard/duelyard/internal/database"
	"github.com/duelyard/duelyard/internal/game"
	"github.com/duelyard/duelyard/internal/handlers"
	"github.com/duelyard/duelyard/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Both backends are optional; the server is fully playable in-memory.
	if os.Getenv("PG_HOST") != "" {
		database.ConnectDB()
	}
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Warnf("action history disabled: %v", err)
		}
	}

	orch := game.NewOrchestrator(logger)
	srv := handlers.NewServer(orch, logger)

	mux := http.NewServeMux()
	mux.Handle("/duel/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		srv.DuelWSHandler(),
	)))

	go func() {
		ticker := time.NewTicker(game.DefaultSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			orch.SweepIdle(game.DefaultIdleMaxAge)
		}
	}()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
