// Gym storefront BFF: owns browser sessions, mirrors the backend cart and
// drives the Webpay checkout hand-off. All business state stays in the store
// backend; this process keeps only per-session ephemera in Redis.
//
// @title           Gym Storefront API
// @version         1.0
// @description     Backend-for-frontend for the gym storefront: session, cart and checkout.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/gymstore/storefront/docs"
	"github.com/gymstore/storefront/internal/api"
	"github.com/gymstore/storefront/internal/core/service"
	"github.com/gymstore/storefront/internal/infrastructure/backend"
	"github.com/gymstore/storefront/internal/infrastructure/config"
	storeredis "github.com/gymstore/storefront/internal/infrastructure/db/redis"
	"github.com/gymstore/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env)

	ctx := context.Background()

	rdb, err := storeredis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Backend transport and endpoint groups.
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	account := backend.NewAccountBackend(client)
	cartBackend := backend.NewCartBackend(client)
	catalog := backend.NewCatalogBackend(client)
	gateway := backend.NewWebpayGateway(client)

	// Per-session stores.
	tokens := storeredis.NewTokenStore(rdb, cfg.Session.TokenTTL)
	markers := storeredis.NewMarkerStore(rdb, cfg.Checkout.MarkerTTL)

	// Core services. The cart mirror subscribes to session transitions so a
	// login refetches the cart and a logout empties the local view.
	sessions := service.NewSessionManager(tokens, log)
	cart := service.NewCartSynchronizer(cartBackend, log)
	sessions.Subscribe(cart)
	checkout := service.NewCheckoutCoordinator(gateway, markers, cart, cfg.Checkout.ReturnURL, log)

	e := api.NewRouter(api.Dependencies{
		Sessions: sessions,
		Cart:     cart,
		Checkout: checkout,
		Account:  account,
		Catalog:  catalog,
		Backend:  client,
		Redis:    rdb,
	}, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	log.Info().Msg("storefront stopped")
}
