package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingService struct {
	Bookings BookingStore
	Drivers  DriverStore
	Payments PaymentVerifier
	Now      func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type BookingInput struct {
	FullName       string              `json:"fullName"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	PickupLocation string              `json:"pickupLocation"`
	Destination    string              `json:"destination"`
	PickupDate     string              `json:"pickupDate"`
	PickupTime     string              `json:"pickupTime"`
	FlightNumber   string              `json:"flightNumber"`
	VehicleType    string              `json:"vehicleType"`
	Passengers     int                 `json:"passengers"`
	Luggage        int                 `json:"luggage"`
	Price          decimal.NullDecimal `json:"price"`
	Currency       string              `json:"currency"`
	Notes          string              `json:"notes"`

	// ClientReference is only set when checkout happened before the booking
	// was stored; PaymentIncluded then asks for an immediate verification.
	ClientReference string `json:"clientReference"`
	PaymentIncluded bool   `json:"paymentIncluded"`
}

func (in BookingInput) validate() error {
	var fe fieldErrors
	fe.require(
		field{"fullName", in.FullName},
		field{"email", in.Email},
		field{"phone", in.Phone},
		field{"pickupLocation", in.PickupLocation},
		field{"destination", in.Destination},
		field{"pickupDate", in.PickupDate},
		field{"pickupTime", in.PickupTime},
		field{"vehicleType", in.VehicleType},
	)
	fe.email("email", in.Email)
	fe.invalidIf(strings.TrimSpace(in.PickupDate) != "" && !validDate(in.PickupDate), "pickupDate")
	fe.invalidIf(strings.TrimSpace(in.PickupTime) != "" && !validClock(in.PickupTime), "pickupTime")
	fe.invalidIf(in.Passengers < 0, "passengers")
	fe.invalidIf(in.Luggage < 0, "luggage")
	fe.invalidIf(in.Price.Valid && in.Price.Decimal.IsNegative(), "price")
	fe.invalidIf(in.ClientReference != "" && !validReference(in.ClientReference), "clientReference")
	return fe.err()
}

type CreateBookingResult struct {
	ID              string               `json:"id"`
	ClientReference string               `json:"clientReference"`
	Status          models.BookingStatus `json:"status"`
	Payment         *VerifyResult        `json:"payment,omitempty"`
}

// NewClientReference builds the customer-facing reference QH-YYYYMMDD-XXXXXX.
func NewClientReference(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return "QH-" + at.UTC().Format("20060102") + "-" + suffix
}

// Create stores a pending booking. A booking is never inserted as paid: when
// payment was included the reference is verified with the gateway instead.
func (s BookingService) Create(ctx context.Context, in BookingInput) (CreateBookingResult, error) {
	if err := in.validate(); err != nil {
		return CreateBookingResult{}, err
	}
	now := s.now()

	passengers := in.Passengers
	if passengers == 0 {
		passengers = 1
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	ref := strings.TrimSpace(in.ClientReference)
	if ref == "" {
		ref = NewClientReference(now)
	}

	b := models.Booking{
		ID:              uuid.NewString(),
		ClientReference: ref,
		FullName:        utils.NormalizeSpace(in.FullName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           utils.NormalizePhone(in.Phone),
		PickupLocation:  utils.NormalizeSpace(in.PickupLocation),
		Destination:     utils.NormalizeSpace(in.Destination),
		PickupDate:      strings.TrimSpace(in.PickupDate),
		PickupTime:      strings.TrimSpace(in.PickupTime),
		FlightNumber:    strings.ToUpper(strings.Join(strings.Fields(in.FlightNumber), "")),
		VehicleType:     strings.ToLower(strings.TrimSpace(in.VehicleType)),
		Passengers:      passengers,
		Luggage:         in.Luggage,
		Price:           in.Price.Decimal.Round(2),
		Currency:        currency,
		Status:          models.StatusPending,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return CreateBookingResult{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "create", "booking created ref="+b.ClientReference)

	out := CreateBookingResult{ID: b.ID, ClientReference: b.ClientReference, Status: b.Status}
	if in.PaymentIncluded && s.Payments != nil {
		res, err := s.Payments.Verify(ctx, b.ClientReference, VerifyOptions{Audit: true, Source: models.SourceBookingCreate})
		if err != nil {
			utils.LogWarn(utils.RequestIDFrom(ctx), "booking", "verify_included_payment", err)
			return out, nil
		}
		out.Payment = &res
		if res.BookingStatus != "" {
			out.Status = res.BookingStatus
		}
	}
	return out, nil
}

type ListBookingsInput struct {
	Status string
	Search string
	domain.Pagination
}

func (s BookingService) List(ctx context.Context, in ListBookingsInput) ([]models.Booking, error) {
	status := models.BookingStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if status != "" && !status.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	p := in.Pagination.Normalize()
	return s.Bookings.List(ctx, models.BookingFilter{
		Status: status,
		Search: in.Search,
		Limit:  p.PageSize,
		Offset: p.Offset(),
	})
}

func (s BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Booking{}, domain.ValidationError{Missing: []string{"id"}}
	}
	return s.Bookings.GetByID(ctx, id)
}

// GetPendingByReference serves the payment page: only bookings still
// awaiting payment are returned.
func (s BookingService) GetPendingByReference(ctx context.Context, ref string) (models.PublicBooking, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.PublicBooking{}, domain.ValidationError{Missing: []string{"ref"}}
	}
	b, err := s.Bookings.GetByReference(ctx, ref)
	if err != nil {
		return models.PublicBooking{}, err
	}
	if b.Status != models.StatusPending {
		return models.PublicBooking{}, domain.StateError{
			Resource: "booking",
			Current:  string(b.Status),
			Msg:      fmt.Sprintf("booking %s is %s and cannot be paid", ref, b.Status),
		}
	}
	return b.Public(), nil
}

// UpdateStatus applies an admin status change. Setting paid is reserved for
// payment reconciliation.
func (s BookingService) UpdateStatus(ctx context.Context, id string, to models.BookingStatus) (models.Booking, error) {
	to = models.BookingStatus(strings.ToLower(strings.TrimSpace(string(to))))
	if !to.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	b, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == to {
		return b, nil
	}
	if !models.CanAdminTransition(b.Status, to) {
		return models.Booking{}, domain.StateError{
			Resource: "booking",
			Current:  string(b.Status),
			Msg:      fmt.Sprintf("cannot change booking from %s to %s", b.Status, to),
		}
	}
	ok, err := s.Bookings.TransitionStatus(ctx, b.ID, b.Status, to)
	if err != nil {
		return models.Booking{}, err
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "status changed by another request, reload and retry"}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "update_status",
		fmt.Sprintf("ref=%s %s -> %s", b.ClientReference, b.Status, to))
	return s.Bookings.GetByID(ctx, b.ID)
}

// AssignDriver sets the driver of an open booking; nil clears it.
func (s BookingService) AssignDriver(ctx context.Context, id string, driverID *int64) (models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.StatusCancelled || b.Status == models.StatusCompleted {
		return models.Booking{}, domain.StateError{
			Resource: "booking",
			Current:  string(b.Status),
			Msg:      fmt.Sprintf("booking is %s", b.Status),
		}
	}
	if driverID != nil {
		d, err := s.Drivers.GetByID(ctx, *driverID)
		if err != nil {
			return models.Booking{}, err
		}
		if d.Status != models.DriverActive {
			return models.Booking{}, domain.ValidationError{Field: "driverId", Msg: "driver is inactive"}
		}
	}
	if err := s.Bookings.AssignDriver(ctx, b.ID, driverID); err != nil {
		return models.Booking{}, err
	}
	return s.Bookings.GetByID(ctx, b.ID)
}
