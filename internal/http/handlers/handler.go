package handlers

import (
	"database/sql"

	"quarhire/internal/services"
)

// Handler holds the services behind every route.
type Handler struct {
	DB       *sql.DB
	Bookings services.BookingService
	Payments services.PaymentService
	Drivers  services.DriverService
	Notify   services.NotificationService
	Docs     services.DocsService
	Reports  services.ReportsService
	Support  Support
}
