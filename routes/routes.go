package routes

import (
	"github.com/YashChoudhary13/The-MEX/handlers"
	"github.com/YashChoudhary13/The-MEX/middleware"
	"github.com/YashChoudhary13/The-MEX/notification"
	"github.com/YashChoudhary13/The-MEX/orders"
	"github.com/YashChoudhary13/The-MEX/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, co *orders.Coordinator, registry *realtime.Registry, store orders.Store, mailer notification.Mailer, logger *zap.Logger) {
	// ── Realtime order tracking ────────────────────────────────────
	r.GET("/ws", realtime.ServeWS(registry, store, logger))

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Password reset
		public.POST("/password-reset/request", handlers.RequestPasswordReset(mailer))
		public.GET("/password-reset/validate/:token", handlers.ValidateResetToken)
		public.POST("/password-reset/reset", handlers.ResetPassword)

		// Menu browsing
		public.GET("/categories", handlers.ListCategories)
		public.GET("/categories/:id/menu-items", handlers.GetMenuItemsByCategory)
		public.GET("/menu-items", handlers.ListMenuItems)
		public.GET("/menu-items/:id", handlers.GetMenuItem)
		public.GET("/special-offers/active", handlers.GetActiveSpecialOffer)

		// Checkout
		public.GET("/system-settings/service-fee", handlers.GetServiceFee)
		public.GET("/system-settings/tax-rate", handlers.GetTaxRate)
		public.POST("/promo-codes/validate", handlers.ValidatePromoCode)
		public.POST("/orders", middleware.OptionalAuth(), handlers.PlaceOrder)
		public.GET("/orders/:id", middleware.OptionalAuth(), handlers.GetOrder)

		// State machine info (docs)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/user/profile", handlers.UpdateProfile)
		auth.PUT("/user/password", handlers.UpdatePassword)
		auth.GET("/my-orders", handlers.GetMyOrders)
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder(co))
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/admin/orders", handlers.AdminGetAllOrders)
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(co))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(co))

		admin.POST("/categories", handlers.CreateCategory)
		admin.PUT("/categories/:id", handlers.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.DeleteCategory)

		admin.POST("/menu-items", handlers.CreateMenuItem)
		admin.PUT("/menu-items/:id", handlers.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", handlers.DeleteMenuItem)

		admin.GET("/special-offers", handlers.ListSpecialOffers)
		admin.POST("/special-offers", handlers.CreateSpecialOffer)
		admin.PUT("/special-offers/:id", handlers.UpdateSpecialOffer)
		admin.POST("/special-offers/deactivate", handlers.DeactivateSpecialOffers)

		admin.GET("/admin/promo-codes", handlers.ListPromoCodes)
		admin.POST("/admin/promo-codes", handlers.CreatePromoCode)
		admin.PUT("/admin/promo-codes/:id", handlers.UpdatePromoCode)
		admin.DELETE("/admin/promo-codes/:id", handlers.DeletePromoCode)

		admin.PUT("/admin/settings/:key", handlers.UpdateSystemSetting)
	}
}
