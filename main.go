// File: autobook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autobook/config"
	"autobook/cron"
	"autobook/database"
	bookingRepoPkg "autobook/database/repository/booking"
	catalogRepoPkg "autobook/database/repository/catalog"
	detailerRepoPkg "autobook/database/repository/detailer"
	slotRepoPkg "autobook/database/repository/slot"
	userRepoPkg "autobook/database/repository/user"
	"autobook/handlers"
	"autobook/middleware"
	"autobook/routes"
	"autobook/services/booking"
	"autobook/services/detailer"
	"autobook/services/notification"
	"autobook/services/payment"
	"autobook/services/user"
	"autobook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	detailerRepo := detailerRepoPkg.NewMongoDetailerRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	if err := slotRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure slot indexes: %v", err)
	}
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	gateway := payment.NewStripeGateway(
		detailerRepo,
		logger,
		config.AppConfig.OnboardRefresh,
		config.AppConfig.OnboardReturn,
		config.AppConfig.DefaultCurrency,
	)

	releaseQueue := cron.NewReleaseQueue()

	bookingService := &booking.DefaultBookingService{
		Slots:           slotRepo,
		Bookings:        bookingRepo,
		Catalog:         catalogRepo,
		Gateway:         gateway,
		Notifier:        notificationService,
		Releases:        releaseQueue,
		Logger:          logger,
		UseTransactions: config.AppConfig.MongoTransactions,
		ClaimTTLMinutes: config.AppConfig.ClaimSweepAfterMin,
	}

	detailerService := &detailer.DefaultDetailerService{
		Repo:    detailerRepo,
		Slots:   slotRepo,
		Catalog: catalogRepo,
		Logger:  logger,
	}

	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	// Reconciliation worker and stale-claim sweep.
	cron.InitReconcileWorker(bookingService)
	cron.InitSweepScheduler()

	authHandler := handlers.NewAuthHandler(userService)
	detailerHandler := handlers.NewDetailerHandler(detailerService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(gateway, bookingService, logger)

	routes.RegisterRoutes(router, authHandler, detailerHandler, bookingHandler, paymentHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	releaseQueue.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
