package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"consulting-booking-api/internal/cache"
	"consulting-booking-api/internal/config"
	"consulting-booking-api/internal/handler"
	"consulting-booking-api/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warnf("migration file not found, skipping: %v", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		log.Warnf("migration warning: %v", err)
	} else {
		log.Info("migration applied")
	}

	// response cache: redis when configured, in-process otherwise
	var c cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rc.Close()
		c = rc
		log.Info("using redis response cache")
	} else {
		c = cache.NewMemory(cfg.CacheTTL)
	}

	st := store.New(pool)
	h := handler.New(st, c, log, cfg.JWTSecret, cfg.SessionTTL)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Router(cfg.AllowedOrigins),
	}
	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")
	srv.Shutdown(context.Background())
}
