package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	categoryrepo "storefront/internal/repository/category"
	checkoutrepo "storefront/internal/repository/checkout"
	customerrepo "storefront/internal/repository/customer"
	inventoryrepo "storefront/internal/repository/inventory"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	inventorysvc "storefront/internal/service/inventory"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
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

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	checkoutRepo := checkoutrepo.NewPostgres(dbpool, logger)
	inventoryRepo := inventoryrepo.NewPostgres(dbpool, logger)

	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(productRepo, logger, cfg.CartShippingFee, cfg.CartTaxRate)
	checkoutService := checkoutsvc.New(cartService, checkoutRepo, logger)
	orderService := ordersvc.New(orderRepo, productRepo, logger)
	inventoryService := inventorysvc.New(inventoryRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:   productService,
		CartSvc:      cartService,
		CheckoutSvc:  checkoutService,
		OrderSvc:     orderService,
		InventorySvc: inventoryService,
		CategoryRepo: categoryRepo,
		CustomerRepo: customerRepo,
	})
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
