package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	cartapp "github.com/dwikikusuma/storefront-state/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront-state/internal/catalog/app"
	catalogsource "github.com/dwikikusuma/storefront-state/internal/catalog/infra/source"
	checkoutapp "github.com/dwikikusuma/storefront-state/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront-state/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/httpapi"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	orderapp "github.com/dwikikusuma/storefront-state/internal/order/app"
	prefapp "github.com/dwikikusuma/storefront-state/internal/preference/app"
	sessionapp "github.com/dwikikusuma/storefront-state/internal/session/app"
	"github.com/dwikikusuma/storefront-state/internal/state"
	"github.com/dwikikusuma/storefront-state/internal/storage"
	wishlistapp "github.com/dwikikusuma/storefront-state/internal/wishlist/app"
	"github.com/dwikikusuma/storefront-state/pkg/config"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
	"github.com/dwikikusuma/storefront-state/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	store, closeStore := mustStore(ctx, cfg.Storage, log)
	defer closeStore()

	st, err := state.Bootstrap(ctx, storage.NewAdapter(store, cfg.Storage.Namespace, log), log)
	if err != nil {
		log.Error("state bootstrap failed", slog.Any("err", err))
		os.Exit(1)
	}

	bus := eventbus.New(log)
	notifier := notify.NewNotifier(bus)
	inbox := notify.NewInbox(bus, 50)

	// Catalog
	catalogSvc := catalogapp.NewService(catalogSource(cfg.Catalog, log), st, bus, notifier, log, cfg.Catalog.Timeout)

	// Cart
	cartSvc := cartapp.NewService(st, catalogSvc, bus, notifier, log)

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, 10)

	api := httpapi.NewServer(httpapi.Deps{
		Exec:     st,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderapp.NewService(st, cartSvc, catalogSvc, bus, notifier, log),
		Wishlist: wishlistapp.NewService(st, bus, notifier, log),
		Theme:    prefapp.NewService(st, bus, log),
		Session:  sessionapp.NewService(st, bus, notifier, log),
		Inbox:    inbox,
		Log:      log,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// the catalog arrives in the background; pages render empty until then
	g.Go(func() error {
		if err := catalogSvc.Load(gctx); err != nil {
			log.Warn("starting without catalog", slog.Any("err", err))
		}
		return nil
	})

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("exited with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func mustStore(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (storage.Store, func()) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMemoryStore(0), func() {}
	case "redis":
		client, err := storage.NewRedisClient(ctx, cfg.RedisAddr,
			storage.WithRedisPassword(cfg.RedisPassword),
			storage.WithRedisDB(cfg.RedisDB),
		)
		if err != nil {
			log.Error("redis connect failed", slog.Any("err", err), slog.String("addr", cfg.RedisAddr))
			os.Exit(1)
		}
		return storage.NewRedisStore(client, cfg.Namespace), func() { _ = client.Close() }
	default:
		fs, err := storage.NewFileStore(cfg.Dir)
		if err != nil {
			log.Error("storage dir unusable", slog.Any("err", err), slog.String("dir", cfg.Dir))
			os.Exit(1)
		}
		return fs, func() {}
	}
}

func catalogSource(cfg config.CatalogConfig, log *slog.Logger) catalogapp.Source {
	if cfg.URL != "" {
		log.Info("catalog source", slog.String("url", cfg.URL))
		return catalogsource.NewHTTPSource(cfg.URL, &http.Client{Timeout: cfg.Timeout}, log)
	}
	log.Info("catalog source", slog.String("file", cfg.File))
	return catalogsource.NewFileSource(cfg.File, log)
}
