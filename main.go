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

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"slotsense/adapters/filestore"
	"slotsense/adapters/postgres"
	"slotsense/adapters/postgres/migrations"
	"slotsense/internal/analysis"
	"slotsense/internal/api"
	"slotsense/internal/config"
	apperrors "slotsense/internal/errors"
	"slotsense/internal/logging"
	"slotsense/internal/rates"
	"slotsense/ports"
)

const shutdownTimeout = 10 * time.Second

// initDatabase connects to PostgreSQL and applies pending migrations
func initDatabase(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Storage.DatabaseURL)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}

	applied, err := migrations.NewMigrator(db).Up(ctx)
	if err != nil {
		db.Close()
		return nil, apperrors.DatabaseError("database migration failed", err)
	}
	for _, version := range applied {
		logger.Info("migration applied", zap.String("version", version))
	}
	return db, nil
}

// initRepository builds the snapshot repository for the configured driver.
// The returned closer releases the database connection, if any.
func initRepository(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (ports.SnapshotRepository, func(), error) {
	if appConfig.Storage.Driver == config.DriverPostgres {
		db, err := initDatabase(ctx, appConfig, logger)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSnapshotRepository(db), func() { db.Close() }, nil
	}

	store, err := filestore.New(appConfig.Storage.Dir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using file snapshot store", zap.String("dir", store.Dir()))
	return store, func() {}, nil
}

func run() error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(appConfig.Log.Level, appConfig.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := initRepository(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	engine := analysis.NewEngine(rates.Default(),
		analysis.WithLogger(logger.Named("engine")),
		analysis.WithBatchWorkers(appConfig.Analysis.BatchWorkers))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	handler := api.NewHandler(engine, repo, logger.Named("api"), reg)

	server := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting slotsense server",
			zap.String("port", appConfig.Server.Port),
			zap.String("storage", appConfig.Storage.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
