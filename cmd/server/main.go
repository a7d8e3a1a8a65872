package main

import (
	"log"
	"net/http"

	"landa-be/internal/cart"
	"landa-be/internal/config"
	"landa-be/internal/db"
	"landa-be/internal/logger"
	"landa-be/internal/order"
	"landa-be/internal/product"
	"landa-be/internal/router"
	"landa-be/internal/sellerrequest"
	"landa-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.JWTSecret)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	requestRepo := sellerrequest.NewRepository(database)
	requestSvc := sellerrequest.NewService(requestRepo)

	secureCookie := cfg.AppEnv == "production"

	r := router.SetupRouter(cfg, router.Handlers{
		User:          user.NewHandler(userSvc, secureCookie),
		Product:       product.NewHandler(productSvc),
		Cart:          cart.NewHandler(cartSvc),
		Order:         order.NewHandler(orderSvc),
		SellerRequest: sellerrequest.NewHandler(requestSvc),
	}, userSvc)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, r))
}
