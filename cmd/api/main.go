package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"apparel-backoffice/internal/client"
	"apparel-backoffice/internal/config"
	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/handler"
	"apparel-backoffice/internal/repository"
	"apparel-backoffice/internal/server"
	"apparel-backoffice/internal/service"
	"apparel-backoffice/internal/session"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabasePath)

	credRepo := repository.NewCredentialRepository(db)
	cartRepo := repository.NewCartRepository(db)

	sessions := session.NewStore(credRepo)
	gw := gateway.New(cfg.Commerce.BaseApiURL, sessions, cfg.Commerce.RequestTimeout)

	catalogClient := client.NewCatalogClient(gw)
	voucherClient := client.NewVoucherClient(gw)
	orderClient := client.NewOrderClient(gw)
	supplierClient := client.NewSupplierClient(gw)
	accountClient := client.NewAccountClient(gw)
	optionClient := client.NewOptionClient(gw)
	promotionClient := client.NewPromotionClient(gw)
	commodityClient := client.NewCommodityClient(gw)

	authService := service.NewAuthService(accountClient, sessions)
	checkoutService := service.NewCheckoutService(cartRepo, catalogClient, voucherClient, orderClient, sessions)

	authHandler := handler.NewAuthHandler(authService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	adminHandler := handler.NewAdminHandler(
		catalogClient,
		voucherClient,
		orderClient,
		supplierClient,
		accountClient,
		optionClient,
		promotionClient,
		commodityClient,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(authHandler, checkoutHandler, adminHandler)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
