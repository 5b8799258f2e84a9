package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"autobook/handlers"
	"autobook/middleware"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	detailerHandler *handlers.DetailerHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.PUT("/fcm-token", middleware.JWTAuthMiddleware(), authHandler.UpdateFCMToken)
	}

	detailers := r.Group("/api/detailers")
	{
		// Profiles and availability are public reads; the booking screen
		// lists free slots.
		detailers.GET("/:id", detailerHandler.GetProfile)
		detailers.GET("/:id/slots", detailerHandler.ListSlots)
		detailers.GET("/:id/slots/available", detailerHandler.ListAvailableSlots)
		detailers.GET("/:id/services", detailerHandler.ListServices)

		protected := detailers.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/:id", detailerHandler.UpsertProfile)
		protected.POST("/:id/slots", detailerHandler.CreateSlots)
		protected.DELETE("/:id/slots/:slotId", detailerHandler.DeleteSlot)
		protected.POST("/:id/services", detailerHandler.AddService)
		protected.PUT("/:id/services/:serviceId", detailerHandler.UpdateService)
		protected.DELETE("/:id/services/:serviceId", detailerHandler.DeleteService)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("", bookingHandler.BookSlot)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.PATCH("/:id/status", bookingHandler.UpdateStatus)
		bookings.DELETE("/:id", bookingHandler.CancelBooking)
	}

	payments := r.Group("/api/payments")
	{
		payments.POST("/intent", middleware.JWTAuthMiddleware(), paymentHandler.CreatePaymentIntent)
		payments.POST("/onboard", middleware.JWTAuthMiddleware(), paymentHandler.OnboardDetailer)
	}

	r.POST("/api/distance", handlers.GetDistanceMatrix)
}
