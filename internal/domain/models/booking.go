package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusPaid      BookingStatus = "paid"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Settled reports whether payment has already been recorded.
func (s BookingStatus) Settled() bool {
	return s == StatusPaid || s == StatusConfirmed || s == StatusCompleted
}

// adminTransitions lists the status changes staff may make by hand.
// pending -> paid is missing on purpose: only reconciliation sets paid.
var adminTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusCancelled},
	StatusPaid:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanAdminTransition reports whether staff may move a booking from -> to.
func CanAdminTransition(from, to BookingStatus) bool {
	for _, next := range adminTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a customer airport-transfer booking.
type Booking struct {
	ID                  string          `json:"id"`
	ClientReference     string          `json:"clientReference"`
	FullName            string          `json:"fullName"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	PickupLocation      string          `json:"pickupLocation"`
	Destination         string          `json:"destination"`
	PickupDate          string          `json:"pickupDate"`
	PickupTime          string          `json:"pickupTime"`
	FlightNumber        string          `json:"flightNumber,omitempty"`
	VehicleType         string          `json:"vehicleType"`
	Passengers          int             `json:"passengers"`
	Luggage             int             `json:"luggage"`
	Price               decimal.Decimal `json:"price"`
	Currency            string          `json:"currency"`
	Status              BookingStatus   `json:"status"`
	Notes               string          `json:"notes,omitempty"`
	DriverID            *int64          `json:"driverId,omitempty"`
	HubtelTransactionID string          `json:"hubtelTransactionId,omitempty"`
	PaymentVerifiedAt   *time.Time      `json:"paymentVerifiedAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// PublicBooking is the reduced view served to unauthenticated callers.
type PublicBooking struct {
	ClientReference string          `json:"clientReference"`
	FullName        string          `json:"fullName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PickupLocation  string          `json:"pickupLocation"`
	Destination     string          `json:"destination"`
	PickupDate      string          `json:"pickupDate"`
	PickupTime      string          `json:"pickupTime"`
	VehicleType     string          `json:"vehicleType"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Status          BookingStatus   `json:"status"`
}

func (b Booking) Public() PublicBooking {
	return PublicBooking{
		ClientReference: b.ClientReference,
		FullName:        b.FullName,
		Email:           b.Email,
		Phone:           b.Phone,
		PickupLocation:  b.PickupLocation,
		Destination:     b.Destination,
		PickupDate:      b.PickupDate,
		PickupTime:      b.PickupTime,
		VehicleType:     b.VehicleType,
		Price:           b.Price,
		Currency:        b.Currency,
		Status:          b.Status,
	}
}

// BookingFilter narrows admin listings.
type BookingFilter struct {
	Status BookingStatus
	Search string
	Limit  int
	Offset int
}
