package app

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/Demonism0/inventory-application/internal/config"
	"github.com/Demonism0/inventory-application/internal/repository"
	"github.com/Demonism0/inventory-application/internal/service"
	httpt "github.com/Demonism0/inventory-application/internal/transport/http"
	"github.com/Demonism0/inventory-application/internal/validation"
	"github.com/Demonism0/inventory-application/pkg/logger"
	"github.com/Demonism0/inventory-application/pkg/metric"
	"github.com/Demonism0/inventory-application/pkg/storage/postgres"

	"golang.org/x/sync/errgroup"
)

func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	metrics := initMetrics(eg, &cfg.Metrics, log)

	db, dbErr := initDatabase(&cfg.Postgres, log)
	if dbErr != nil {
		return dbErr
	}
	defer closeDB(db)

	itemService, categoryService := initServices(db, metrics, log)

	if serverErr := initHTTPServer(
		ctx, eg, &cfg.HTTP, itemService, categoryService, log, metrics,
	); serverErr != nil {
		return serverErr
	}

	return waitForShutdown(eg)
}

func initMetrics(
	eg *errgroup.Group,
	cfg *config.Metrics,
	log logger.Logger,
) metric.Factory {
	metrics := metric.NewFactory()

	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	metricsServer := &http.Server{
		Addr:              hostPort,
		Handler:           metrics.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		log.Infow("starting metrics server", "port", cfg.Port)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("app.initMetrics: %w", err)
		}
		return nil
	})

	return metrics
}

func initDatabase(cfg *config.Postgres, log logger.Logger) (*postgres.Postgres, error) {
	db, err := postgres.NewPostgres(
		cfg,
		log.With("component", "database"),
		postgres.MaxPoolSize(cfg.PoolMax),
		postgres.MaxConnAttempts(cfg.ConnAttempts),
		postgres.BaseRetryDelay(cfg.BaseRetryDelay),
		postgres.MaxRetryDelay(cfg.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initDatabase: %w", err)
	}
	return db, nil
}

func closeDB(db *postgres.Postgres) {
	if db != nil {
		db.Close()
	}
}

func initServices(
	db *postgres.Postgres,
	metrics metric.Factory,
	log logger.Logger,
) (*service.ItemService, *service.CategoryService) {
	itemRepo := repository.NewItemRepository(db, metrics.Store())
	categoryRepo := repository.NewCategoryRepository(db, metrics.Store())

	itemService := service.NewItemService(
		itemRepo,
		categoryRepo,
		log.With("component", "item service"),
	)
	categoryService := service.NewCategoryService(
		categoryRepo,
		itemRepo,
		log.With("component", "category service"),
	)

	return itemService, categoryService
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.HTTP,
	itemService *service.ItemService,
	categoryService *service.CategoryService,
	log logger.Logger,
	metrics metric.Factory,
) error {
	validate, err := validation.NewEngine()
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	httpServer, err := httpt.NewHTTPServer(
		httpt.NewInventoryHandler(
			itemService,
			categoryService,
			validate,
			cfg,
			log,
			metrics.HTTP(),
		),
		cfg,
		log.With("component", "http server"),
	)
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
	return nil
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}
