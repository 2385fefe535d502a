package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gamestore-api/internal/config"
	"gamestore-api/internal/db"
	"gamestore-api/internal/httpserver"
	cartrepo "gamestore-api/internal/repository/cart"
	gamerepo "gamestore-api/internal/repository/game"
	orderrepo "gamestore-api/internal/repository/order"
	reviewrepo "gamestore-api/internal/repository/review"
	userrepo "gamestore-api/internal/repository/user"
	authsvc "gamestore-api/internal/service/auth"
	cartsvc "gamestore-api/internal/service/cart"
	catalogsvc "gamestore-api/internal/service/catalog"
	ordersvc "gamestore-api/internal/service/order"
	reviewsvc "gamestore-api/internal/service/review"
	"gamestore-api/internal/service/stock"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	gameRepo := gamerepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	reviewRepo := reviewrepo.NewPostgres(dbpool)

	stockValidator := stock.NewValidator(gameRepo)
	authService := authsvc.New(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	catalogService := catalogsvc.New(gameRepo)
	cartService := cartsvc.New(cartRepo, stockValidator)
	orderService := ordersvc.New(orderRepo, cartRepo, stockValidator)
	reviewService := reviewsvc.New(reviewRepo, orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:    authService,
		CatalogSvc: catalogService,
		CartSvc:    cartService,
		OrderSvc:   orderService,
		ReviewSvc:  reviewService,
	}, cfg.FileURLHost)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
