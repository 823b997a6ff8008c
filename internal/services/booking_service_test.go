package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingInput() BookingInput {
	return BookingInput{
		FullName:       "  Kwame   Boateng ",
		Email:          "Kwame@Example.com",
		Phone:          "020 555 1234",
		PickupLocation: "Kotoka International Airport",
		Destination:    "Airport City",
		PickupDate:     "2025-04-10",
		PickupTime:     "06:45",
		FlightNumber:   "kq 512",
		VehicleType:    "SUV",
		Price:          decimal.NewNullDecimal(decimal.NewFromInt(650)),
	}
}

func fixedNow() time.Time { return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC) }

func TestNewClientReferenceFormat(t *testing.T) {
	ref := NewClientReference(fixedNow())
	assert.Regexp(t, regexp.MustCompile(`^QH-20250401-[0-9A-F]{6}$`), ref)
	assert.NotEqual(t, ref, NewClientReference(fixedNow()))
}

func TestCreateBookingStoresPending(t *testing.T) {
	store := newMemBookings()
	svc := BookingService{Bookings: store, Now: fixedNow}

	out, err := svc.Create(context.Background(), validBookingInput())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, out.Status)
	assert.Nil(t, out.Payment)

	b := store.get(out.ClientReference)
	assert.Equal(t, "Kwame Boateng", b.FullName)
	assert.Equal(t, "kwame@example.com", b.Email)
	assert.Equal(t, "0205551234", b.Phone)
	assert.Equal(t, "KQ512", b.FlightNumber)
	assert.Equal(t, "suv", b.VehicleType)
	assert.Equal(t, 1, b.Passengers)
	assert.Equal(t, "GHS", b.Currency)
	assert.True(t, b.Price.Equal(decimal.NewFromInt(650)))
}

func TestCreateBookingValidation(t *testing.T) {
	svc := BookingService{Bookings: newMemBookings(), Now: fixedNow}

	in := BookingInput{Email: "nope", PickupDate: "10/04/2025", Passengers: -1}
	_, err := svc.Create(context.Background(), in)

	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"fullName", "phone", "pickupLocation", "destination", "pickupTime", "vehicleType"}, ve.Missing)
	assert.Equal(t, []string{"email", "pickupDate", "passengers"}, ve.Invalid)
}

func TestCreateBookingDuplicateReference(t *testing.T) {
	ref := "QH-20250401-AAAAAA"
	svc := BookingService{Bookings: newMemBookings(pendingBooking(ref, 100)), Now: fixedNow}

	in := validBookingInput()
	in.ClientReference = ref
	_, err := svc.Create(context.Background(), in)
	assert.True(t, domain.IsConflict(err))
}

func TestCreateBookingWithIncludedPaymentVerifies(t *testing.T) {
	ref := "QH-20250401-BBBBBB"
	f := newPaymentFixture()
	f.gatewayPaid(ref, "TX-9", 650)
	svc := BookingService{Bookings: f.bookings, Payments: f.svc, Now: fixedNow}

	in := validBookingInput()
	in.ClientReference = ref
	in.PaymentIncluded = true
	out, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, out.Payment)
	assert.True(t, out.Payment.Transitioned)
	assert.Equal(t, models.StatusPaid, out.Status)
	assert.Equal(t, []string{"manual_verify_Paid"}, f.callbacks.statuses())
	assert.Equal(t, models.SourceBookingCreate, f.callbacks.rows[0].Source)
	assert.Equal(t, 2, f.mail.count())
}

func TestCreateBookingKeepsPendingWhenGatewayUnpaid(t *testing.T) {
	f := newPaymentFixture()
	svc := BookingService{Bookings: f.bookings, Payments: f.svc, Now: fixedNow}

	in := validBookingInput()
	in.ClientReference = "QH-20250401-CCCCCC"
	in.PaymentIncluded = true
	out, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, out.Status)
	assert.Zero(t, f.mail.count())
}

func TestGetPendingByReference(t *testing.T) {
	paid := pendingBooking("QH-PAID-0001", 300)
	paid.Status = models.StatusPaid
	svc := BookingService{Bookings: newMemBookings(pendingBooking("QH-OPEN-0001", 300), paid)}

	pub, err := svc.GetPendingByReference(context.Background(), "QH-OPEN-0001")
	require.NoError(t, err)
	assert.Equal(t, "Ama Mensah", pub.FullName)

	_, err = svc.GetPendingByReference(context.Background(), "QH-PAID-0001")
	assert.True(t, domain.IsState(err))

	_, err = svc.GetPendingByReference(context.Background(), "QH-NONE-0001")
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.GetPendingByReference(context.Background(), " ")
	assert.ErrorAs(t, err, new(domain.ValidationError))
}

func TestUpdateStatusTransitions(t *testing.T) {
	paid := pendingBooking("QH-PAID-0001", 300)
	paid.Status = models.StatusPaid
	done := pendingBooking("QH-DONE-0001", 300)
	done.Status = models.StatusCompleted
	open := pendingBooking("QH-OPEN-0001", 300)
	svc := BookingService{Bookings: newMemBookings(paid, done, open)}
	ctx := context.Background()

	b, err := svc.UpdateStatus(ctx, paid.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)

	_, err = svc.UpdateStatus(ctx, open.ID, models.StatusPaid)
	assert.True(t, domain.IsState(err))

	_, err = svc.UpdateStatus(ctx, done.ID, models.StatusCancelled)
	assert.True(t, domain.IsState(err))

	_, err = svc.UpdateStatus(ctx, open.ID, "archived")
	assert.ErrorAs(t, err, new(domain.ValidationError))

	b, err = svc.UpdateStatus(ctx, open.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, b.Status)
}

func TestAssignDriver(t *testing.T) {
	open := pendingBooking("QH-OPEN-0001", 300)
	cancelled := pendingBooking("QH-GONE-0001", 300)
	cancelled.Status = models.StatusCancelled
	drivers := newMemDrivers(
		models.Driver{ID: 1, Name: "Kofi", Status: models.DriverActive},
		models.Driver{ID: 2, Name: "Yaw", Status: models.DriverInactive},
	)
	svc := BookingService{Bookings: newMemBookings(open, cancelled), Drivers: drivers}
	ctx := context.Background()

	one, two, missing := int64(1), int64(2), int64(9)

	b, err := svc.AssignDriver(ctx, open.ID, &one)
	require.NoError(t, err)
	require.NotNil(t, b.DriverID)
	assert.Equal(t, int64(1), *b.DriverID)

	_, err = svc.AssignDriver(ctx, open.ID, &two)
	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "driverId", ve.Field)

	_, err = svc.AssignDriver(ctx, open.ID, &missing)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.AssignDriver(ctx, cancelled.ID, &one)
	assert.True(t, domain.IsState(err))

	b, err = svc.AssignDriver(ctx, open.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, b.DriverID)
}

func TestListBookingsRejectsUnknownStatus(t *testing.T) {
	svc := BookingService{Bookings: newMemBookings(pendingBooking("QH-OPEN-0001", 300))}

	_, err := svc.List(context.Background(), ListBookingsInput{Status: "lost"})
	assert.ErrorAs(t, err, new(domain.ValidationError))

	out, err := svc.List(context.Background(), ListBookingsInput{Status: "Pending"})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
