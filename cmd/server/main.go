package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // DISPLAY_TIMEZONE must load on hosts without a zoneinfo database

	"golang.org/x/sync/errgroup"

	accesshandler "numcheck/internal/access/handler"
	accessservice "numcheck/internal/access/service"
	operatorstore "numcheck/internal/access/store/operator"
	sessionstore "numcheck/internal/access/store/session"
	"numcheck/internal/lifecycle"
	lifecyclehandler "numcheck/internal/lifecycle/handler"
	lifecyclemetrics "numcheck/internal/lifecycle/metrics"
	lifecyclepublisher "numcheck/internal/lifecycle/publisher"
	"numcheck/internal/platform/config"
	"numcheck/internal/platform/httpserver"
	"numcheck/internal/platform/logger"
	httpmetrics "numcheck/internal/platform/metrics"
	"numcheck/internal/platform/postgres"
	"numcheck/internal/platform/redis"
	"numcheck/internal/session"
	"numcheck/internal/session/browser"
	httptransport "numcheck/internal/transport/http"
	verificationhandler "numcheck/internal/verification/handler"
	verificationmetrics "numcheck/internal/verification/metrics"
	verificationpublisher "numcheck/internal/verification/publisher"
	verificationservice "numcheck/internal/verification/service"
	verificationstore "numcheck/internal/verification/store"
	"numcheck/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

// Development operators created at startup when SEED_OPERATORS is on.
var seedOperators = []struct{ username, password string }{
	{"admin", "admin123"},
	{"user1", "user123"},
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("numcheck stopped with error", "error", err)
		os.Exit(1)
	}
}

// stores groups the persistence chosen at startup.
type stores struct {
	results   verificationservice.Store
	operators accessservice.OperatorStore
	sessions  accessservice.SessionStore
}

// run wires high-level dependencies and blocks until ctx is cancelled.
// Business logic lives in the internal service packages.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	location, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		return fmt.Errorf("load display timezone: %w", err)
	}

	health := map[string]httptransport.HealthCheck{}

	db, st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		health["postgres"] = db.PingContext
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		health["redis"] = redisClient.Health
	}

	// Session lifecycle
	guard := session.NewGuard()
	conn := browser.New(cfg.Browser, browser.WithLogger(log))
	lifecycleOpts := []lifecycle.Option{
		lifecycle.WithLogger(log),
		lifecycle.WithMetrics(lifecyclemetrics.New()),
		lifecycle.WithReconnectPolicy(cfg.Session.ReconnectPolicy, cfg.Session.ReconnectDelay),
	}
	if redisClient != nil {
		lifecycleOpts = append(lifecycleOpts,
			lifecycle.WithObserver(lifecyclepublisher.NewRedis(redisClient, cfg.Redis.Channel)))
		log.Info("publishing session snapshots to redis", "channel", cfg.Redis.Channel)
	}
	controller, err := lifecycle.New(conn, guard, lifecycleOpts...)
	if err != nil {
		return fmt.Errorf("create lifecycle controller: %w", err)
	}

	// Verification pipeline
	verificationOpts := []verificationservice.Option{
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(verificationmetrics.New()),
		verificationservice.WithCheckTimeout(cfg.Session.CheckTimeout),
		verificationservice.WithAddressSuffix(cfg.Session.AddressSuffix),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := verificationpublisher.NewKafka(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer kafkaPublisher.Close()
		verificationOpts = append(verificationOpts, verificationservice.WithPublisher(
			verificationpublisher.NewGuarded(kafkaPublisher, circuit.New("kafka"), log)))
		log.Info("streaming verification results to kafka", "topic", cfg.Kafka.Topic)
	}
	verifier, err := verificationservice.New(controller, conn, guard, st.results, verificationOpts...)
	if err != nil {
		return fmt.Errorf("create verification service: %w", err)
	}

	// Operator access
	access, err := accessservice.New(st.operators, st.sessions, accessservice.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create access service: %w", err)
	}
	if cfg.Server.SeedOperators {
		for _, op := range seedOperators {
			if err := access.EnsureOperator(ctx, op.username, op.password); err != nil {
				return err
			}
		}
	}

	router := httptransport.NewRouter(log,
		httptransport.Config{
			StaticDir:    cfg.Server.StaticDir,
			Metrics:      httpmetrics.New(),
			HealthChecks: health,
		},
		accesshandler.New(access, log),
		lifecyclehandler.New(controller, log),
		verificationhandler.New(verifier, log, verificationhandler.Config{
			UploadDir:      cfg.Upload.Dir,
			MaxUploadBytes: cfg.Upload.MaxBytes,
			Location:       location,
		}),
	)
	srv := httpserver.New(cfg.Server.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := controller.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("lifecycle controller: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting numcheck", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		if err := controller.Shutdown(shutdownCtx); err != nil {
			log.Error("session shutdown failed", "error", err)
		}
		return nil
	})
	return g.Wait()
}

// openStores uses Postgres when DATABASE_URL is set and in-memory stores
// otherwise. The returned db is nil in the in-memory case.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*sql.DB, stores, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set; results and access logs are kept in memory")
		return nil, stores{
			results:   verificationstore.NewInMemory(),
			operators: operatorstore.NewInMemory(),
			sessions:  sessionstore.NewInMemory(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, stores{}, err
	}
	return db, stores{
		results:   verificationstore.NewPostgres(db),
		operators: operatorstore.NewPostgres(db),
		sessions:  sessionstore.NewPostgres(db),
	}, nil
}
