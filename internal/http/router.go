package api

import (
	stdhttp "net/http"

	intconfig "quarhire/internal/config"
	h "quarhire/internal/http/handlers"
	"quarhire/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires every route. gate guards the admin group.
func NewRouter(env intconfig.Env, hd *h.Handler, gate middleware.AdminGate) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		zap.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)

		// Public booking site
		api.POST("/bookings", hd.CreateBooking)
		api.GET("/bookings/by-ref", hd.GetBookingByRef)
		api.POST("/booking/email", hd.SendBookingEmail)
		api.POST("/contact/email", hd.SendContactEmail)

		// Payments
		hubtel := api.Group("/hubtel")
		hubtel.POST("/checkout", hd.InitiateCheckout)
		hubtel.POST("/callback", hd.HubtelCallback)
		hubtel.GET("/callback", hd.HubtelCallbackPing)
		hubtel.POST("/status-check", hd.HubtelStatus)
		hubtel.GET("/status", hd.HubtelStatus)
		hubtel.POST("/verify", hd.HubtelVerify)
		hubtel.GET("/verify", hd.HubtelVerify)
		hubtel.POST("/confirm-email", hd.ConfirmPaymentEmail)
		api.POST("/paystack/verify", hd.PaystackVerify)

		// Admin dashboard
		admin := api.Group("", middleware.RequireAdmin(gate))
		admin.GET("/auth/me", hd.Me)

		admin.GET("/bookings", hd.ListBookings)
		admin.GET("/bookings/:id", hd.GetBooking)
		admin.PUT("/bookings/:id/status", hd.UpdateBookingStatus)
		admin.PUT("/bookings/:id/driver", hd.AssignBookingDriver)
		admin.GET("/bookings/:id/invoice", hd.GetBookingInvoicePDF)
		admin.POST("/invoices/send-email", hd.SendInvoiceEmail)

		admin.GET("/hubtel/callbacks", hd.ListCallbacks)
		admin.GET("/reports/finance", hd.GetFinanceReport)

		drivers := admin.Group("/drivers")
		drivers.GET("", hd.GetDrivers)
		drivers.POST("", hd.CreateDriver)
		drivers.GET("/:id", hd.GetDriver)
		drivers.PUT("/:id", hd.UpdateDriver)
		drivers.DELETE("/:id", hd.DeleteDriver)
	}

	return r
}
