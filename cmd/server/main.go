// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Wizard logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"checkin/internal/audit"
	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/client"
	"checkin/internal/checkin/flash"
	"checkin/internal/checkin/handler"
	"checkin/internal/checkin/link"
	"checkin/internal/checkin/middleware"
	"checkin/internal/checkin/render"
	"checkin/internal/checkin/session"
	"checkin/internal/platform/config"
	"checkin/internal/platform/httpserver"
	"checkin/internal/platform/logger"
	"checkin/internal/platform/metrics"
	"checkin/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	renderer, err := render.New(log)
	if err != nil {
		log.Error("template compile failed", "error", err)
		os.Exit(1)
	}

	// Session-scoped stores: Redis when configured, in-memory otherwise.
	var (
		answerStore  answers.Store = answers.NewInMemoryStore()
		flashStore   flash.Store   = flash.NewInMemoryStore()
		sessionStore session.Store = session.NewInMemoryStore()
	)
	rdb, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		answerStore = answers.NewRedisStore(rdb.Client, cfg.SessionTTL)
		flashStore = flash.NewRedisStore(rdb.Client, cfg.SessionTTL)
		sessionStore = session.NewRedisStore(rdb.Client, cfg.SessionTTL)
		log.Info("using redis session stores")
	}

	// Audit trail: Postgres store plus an optional Kafka fan-out.
	var auditStore audit.Store = audit.NewInMemoryStore()
	if cfg.PostgresDSN != "" {
		db, err := audit.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := audit.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("audit migration failed", "error", err)
			os.Exit(1)
		}
		auditStore = pg
		log.Info("using postgres audit store")
	}

	group, ctx := errgroup.WithContext(ctx)

	var worker *audit.Worker
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		worker = audit.NewWorker(sink, log)
		group.Go(func() error {
			if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		log.Info("audit events fan out to kafka", "topic", cfg.AuditTopic)
	}
	auditor := audit.NewPublisher(auditStore, worker)

	backend := client.New(cfg.BackendURL, cfg.ServiceTokenKey, m)
	sessions := session.NewService(sessionStore)
	links := link.NewService(cfg.LinkTokenKey)
	gate := middleware.NewGate(backend, sessions, renderer, log, m, auditor)
	h := handler.New(backend, answerStore, flashStore, sessions, links, renderer, log, m, auditor)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.ClientMetadata)
	router.Use(middleware.Logger(log))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if rdb != nil {
			if err := rdb.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/assets/*", render.Assets())
	h.Register(router, gate)

	srv := httpserver.New(cfg.Addr, router)

	group.Go(func() error {
		log.Info("starting check-in wizard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
