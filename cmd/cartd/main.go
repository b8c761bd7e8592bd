package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/cart-service/internal/catalog"
	"github.com/nikolayk812/cart-service/internal/config"
	"github.com/nikolayk812/cart-service/internal/events"
	"github.com/nikolayk812/cart-service/internal/httpapi"
	"github.com/nikolayk812/cart-service/internal/logging"
	"github.com/nikolayk812/cart-service/internal/migrations"
	"github.com/nikolayk812/cart-service/internal/port"
	"github.com/nikolayk812/cart-service/internal/repository"
	"github.com/nikolayk812/cart-service/internal/telemetry"
	"github.com/nikolayk812/cart-service/internal/usecase"
	"golang.org/x/sync/errgroup"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := migrate(cfg.DatabaseURL); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = cfg.DBMaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	carts, err := repository.NewCart(pool)
	if err != nil {
		return fmt.Errorf("repository.NewCart: %w", err)
	}

	products, err := newCatalog(cfg, pool)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closePublisher(); err != nil {
			logger.Warn("publisher close failed", slog.Any("error", err))
		}
	}()

	metrics := telemetry.NewMetrics(cfg.MetricsNamespace)
	locks := usecase.NewSessionLocks()
	handler := httpapi.NewHandler(
		usecase.NewAddItemToCart(carts, products, publisher, locks),
		usecase.NewGetCart(carts),
		usecase.NewRemoveItemFromCart(carts, publisher, locks),
		pool,
		metrics,
	)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(logger, metrics, handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", slog.String("addr", cfg.HTTPAddr), slog.String("catalog", cfg.CatalogMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func migrate(databaseURL string) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Up(sqlDB); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}
	return nil
}

func newCatalog(cfg *config.Config, pool *pgxpool.Pool) (port.ProductCatalog, error) {
	if cfg.CatalogMode == config.CatalogModePermissive {
		return catalog.Permissive{}, nil
	}

	products, err := repository.NewProduct(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewProduct: %w", err)
	}
	return products, nil
}

func newPublisher(cfg *config.Config) (port.EventPublisher, func() error, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.Nop{}, func() error { return nil }, nil
	}

	k, err := events.NewKafka(events.KafkaConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Kafka.Topic,
		MaxAttempts: cfg.Kafka.MaxAttempts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("events.NewKafka: %w", err)
	}
	return k, k.Close, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
