package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hazelbrook/creekside/internal/rewardd"
)

func main() {
	addr := strEnv("CREEKSIDE_ADDR", ":8474")

	cfg := rewardd.DefaultConfig()
	cfg.AutofishQuota = intEnv("CREEKSIDE_AUTOFISH_QUOTA", cfg.AutofishQuota)
	cfg.MinWaitMs = intEnv("CREEKSIDE_MIN_WAIT_MS", cfg.MinWaitMs)
	cfg.MaxWaitMs = intEnv("CREEKSIDE_MAX_WAIT_MS", cfg.MaxWaitMs)

	var store rewardd.Store
	if dsn := strings.TrimSpace(os.Getenv("CREEKSIDE_DB_DSN")); dsn != "" {
		gs, err := rewardd.OpenPostgres(dsn)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		store = gs
		log.Println("reward store: postgres")
	} else {
		store = rewardd.NewMemoryStore()
		log.Println("reward store: in-memory (set CREEKSIDE_DB_DSN for persistence)")
	}

	svc := rewardd.NewService(cfg, store, time.Now().UnixNano())
	srv := &http.Server{
		Addr:              addr,
		Handler:           rewardd.SetupRoutes(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("rewardd listening on %s (autofish quota %d/day)", addr, cfg.AutofishQuota)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func strEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
