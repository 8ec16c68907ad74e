package main

import (
	"log"

	"ebuy-be/internal/address"
	"ebuy-be/internal/cart"
	"ebuy-be/internal/checkout"
	"ebuy-be/internal/config"
	"ebuy-be/internal/db"
	"ebuy-be/internal/logger"
	"ebuy-be/internal/metrics"
	"ebuy-be/internal/middleware"
	"ebuy-be/internal/notifier"
	"ebuy-be/internal/order"
	"ebuy-be/internal/product"
	"ebuy-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.Open(cfg)
	if err != nil {
		logger.L().Fatal("database unavailable", zap.Error(err))
	}
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)
	productHandler := product.NewHandler(productSvc)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)
	addressHandler := address.NewHandler(addressSvc)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)
	cartHandler := cart.NewHandler(cartSvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderSvc)

	var mailer notifier.Notifier = notifier.Noop{}
	if cfg.SMTPHost != "" {
		mailer = notifier.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	}

	checkoutStore := checkout.NewStore(database)
	checkoutSvc := checkout.NewService(checkoutStore, mailer, cfg.CheckoutTimeout)
	checkoutHandler := checkout.NewHandler(checkoutSvc)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Auth(),
		middleware.Logging(),
		middleware.RateLimit(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", userHandler.Register)
	authGroup.POST("/login", userHandler.Login)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	authed := api.Group("", middleware.RequireAuth())

	authed.GET("/profile", userHandler.GetProfile)
	authed.PUT("/profile", userHandler.UpdateProfile)

	authed.POST("/products", productHandler.Create)
	authed.PUT("/products/:id", productHandler.Update)
	authed.DELETE("/products/:id", productHandler.Delete)
	authed.PATCH("/products/:id/deactivate", productHandler.Deactivate)
	authed.GET("/seller/products", productHandler.ListMine)

	authed.GET("/addresses", addressHandler.List)
	authed.POST("/addresses", addressHandler.Create)
	authed.PATCH("/addresses/:id/default", addressHandler.SetDefault)

	authed.GET("/cart", cartHandler.Get)
	authed.DELETE("/cart", cartHandler.Clear)
	authed.POST("/cart/items", cartHandler.AddItem)
	authed.PUT("/cart/items/:id", cartHandler.UpdateItem)
	authed.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	authed.POST("/checkout", checkoutHandler.Checkout)

	authed.GET("/orders", orderHandler.ListPurchases)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	authed.GET("/seller/orders", orderHandler.ListSales)

	logger.L().Info("server running", zap.String("port", cfg.AppPort))
	log.Fatal(r.Run(":" + cfg.AppPort))
}
