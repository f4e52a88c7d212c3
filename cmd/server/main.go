package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labibshop/backend/internal/config"
	"labibshop/backend/internal/httpapi"
	"labibshop/backend/internal/kv"
	pgkv "labibshop/backend/internal/kv/postgres"
	rediskv "labibshop/backend/internal/kv/redis"
	"labibshop/backend/internal/service"
	"labibshop/backend/internal/store/blob"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var port kv.Store
	closers := make([]func() error, 0, 1)

	switch {
	case cfg.DatabaseURL != "":
		pg, err := pgkv.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with in-memory fallback", err)
		}
		port = pg
		closers = append(closers, pg.Close)
		log.Println("persistence: postgres")
	case cfg.RedisAddr != "":
		redis := rediskv.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redis.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using in-memory persistence", err)
			port = kv.NewMemory()
		} else {
			port = redis
			closers = append(closers, redis.Close)
			log.Println("persistence: redis")
		}
	default:
		port = kv.NewMemory()
		log.Println("persistence: in-memory")
	}

	repo := blob.New(ctx, port)
	svc := service.New(repo)
	auth, err := httpapi.NewAuthManager(cfg.AuthSecret, cfg.TokenTTL, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("auth setup: %v", err)
	}
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("shop backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}
