package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	cartapi "github.com/ridloal/sorav-storefront/internal/cart/api"
	catalogapi "github.com/ridloal/sorav-storefront/internal/catalog/api"
	checkoutapi "github.com/ridloal/sorav-storefront/internal/checkout/api"
	orderapi "github.com/ridloal/sorav-storefront/internal/order/api"
	"github.com/ridloal/sorav-storefront/internal/platform/config"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
	"github.com/ridloal/sorav-storefront/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := logger.Init(config.GetEnv("LOG_LEVEL", "info")); err != nil {
		logger.Error("Failed to initialise logger", err)
	}
	defer logger.Sync()

	// Load Config
	cfg, err := config.Load(config.GetEnv("CONFIG_FILE", ""))
	if err != nil {
		logger.Error("Failed to load configuration", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		logger.Error("Failed to initialise logger", err)
	}

	logger.Info("Starting Storefront Service...", zap.String("storage_driver", cfg.Storage.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup Dependencies
	cartSession, cleanup, err := session.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open cart session", err)
		os.Exit(1)
	}
	defer cleanup()

	// Setup Gin Router
	router := gin.Default()
	apiV1 := router.Group("/api/v1")
	catalogapi.NewProductHandler(cartSession).RegisterRoutes(apiV1)
	cartapi.NewCartHandler(cartSession).RegisterRoutes(apiV1)
	orderapi.NewOrderHandler(cartSession).RegisterRoutes(apiV1)
	checkoutapi.NewCheckoutHandler(cartSession).RegisterRoutes(apiV1)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Storefront Service running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Storefront Service stopped with error", err)
		return
	}
	logger.Info("Storefront Service stopped")
}
