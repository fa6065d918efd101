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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"socialdash/internal/api"
	"socialdash/internal/config"
	"socialdash/internal/dataset"
	"socialdash/internal/engine"
	"socialdash/internal/logging"
	"socialdash/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New("socialdash")

	// 1. Echo starts right away
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.Server.AllowOrigin}))
	e.Use(api.RequestLogger(logger))
	e.Use(m.Middleware())

	// 2. Handler without data answers 503 until the dataset is in
	h := api.NewHandler(nil, cfg.Dashboard.TopN, logger, m)
	h.RegisterRoutes(e)

	g, ctx := errgroup.WithContext(ctx)

	// 3. Load the dataset in the background
	g.Go(func() error {
		t0 := time.Now()
		ds, err := loadDataset(cfg)
		if err != nil {
			return err
		}
		h.SetData(ds)
		logger.Info("Dataset ready",
			zap.Int("periods", ds.Periods().Len()),
			zap.Int("records", ds.RecordCount()),
			zap.Duration("took", time.Since(t0)))
		return nil
	})

	g.Go(func() error {
		logger.Info("Server listening", zap.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadDataset(cfg *config.Config) (*engine.Dataset, error) {
	if cfg.Data.File == "" {
		return dataset.Default()
	}
	return engine.LoadFile(cfg.Data.File, cfg.Data.Validate)
}
