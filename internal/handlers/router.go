package handlers

import (
	"github.com/gin-gonic/gin"

	"fundraise-platform/internal/middleware"
	"fundraise-platform/internal/payments"
	"fundraise-platform/internal/storage"
	ws "fundraise-platform/internal/websocket"
)

// RegisterRoutes wires the full API surface onto the router. Handlers get the
// store by injection so tests can run against a fresh store per test.
func RegisterRoutes(r *gin.Engine, store storage.Storage, intents payments.PaymentIntents, hub *ws.Hub, currency string) {
	authHandler := NewAuthHandler(store)
	charityHandler := NewCharityHandler(store)
	donationHandler := NewDonationHandler(store, intents, hub, currency)
	wsHandler := NewWebSocketHandler(store, hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/charities", charityHandler.List)
		api.GET("/donations/:referralCode", donationHandler.ListByReferralCode)
		api.GET("/fundraiser/:referralCode", donationHandler.GetFundraiser)
		api.POST("/create-payment-intent", donationHandler.CreatePaymentIntent)
		api.POST("/donations", donationHandler.Create)

		api.GET("/ws/:referralCode", wsHandler.ServeWs)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(store.Sessions()))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/user", authHandler.Me)
		}
	}
}
