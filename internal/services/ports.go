package services

import (
	"context"
	"time"

	"quarhire/internal/domain/models"
	"quarhire/internal/gateways/hubtel"
	"quarhire/internal/gateways/paystack"
	"quarhire/internal/mailer"
	"quarhire/internal/repositories"
)

// BookingStore is implemented by repositories.BookingRepository.
type BookingStore interface {
	Create(ctx context.Context, b models.Booking) error
	List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	GetByReference(ctx context.Context, ref string) (models.Booking, error)
	// MarkPaid must only change a row whose status is still pending and
	// report whether it did.
	MarkPaid(ctx context.Context, ref, transactionID string, at time.Time) (bool, error)
	TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error)
	AssignDriver(ctx context.Context, id string, driverID *int64) error
}

type CallbackLogStore interface {
	Insert(ctx context.Context, l models.PaymentCallbackLog) (int64, error)
	List(ctx context.Context, f repositories.CallbackFilter) ([]models.PaymentCallbackLog, error)
}

type DriverStore interface {
	List(ctx context.Context, status string) ([]models.Driver, error)
	GetByID(ctx context.Context, id int64) (models.Driver, error)
	Create(ctx context.Context, d models.Driver) (int64, error)
	Update(ctx context.Context, d models.Driver) error
	Delete(ctx context.Context, id int64) error
}

type ProfileStore interface {
	GetByID(ctx context.Context, id string) (models.Profile, error)
}

type FinanceStore interface {
	ListBuckets(ctx context.Context, from, to string) ([]repositories.FinanceRow, error)
}

// PaymentGateway is the hosted checkout provider (Hubtel).
type PaymentGateway interface {
	Configured() bool
	InitiateCheckout(ctx context.Context, req hubtel.CheckoutRequest) (hubtel.CheckoutResult, error)
	GetTransactionStatus(ctx context.Context, clientReference string) (hubtel.TransactionStatus, error)
}

// LegacyGateway is the verify-only Paystack integration.
type LegacyGateway interface {
	VerifyTransaction(ctx context.Context, reference string) (paystack.Verification, error)
}

type Mailer interface {
	Configured() bool
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// PaymentNotifier sends the paid-booking emails.
type PaymentNotifier interface {
	SendPaymentConfirmation(ctx context.Context, b models.Booking) error
}

// PaymentVerifier is the part of PaymentService the booking flow needs.
type PaymentVerifier interface {
	Verify(ctx context.Context, clientReference string, opts VerifyOptions) (VerifyResult, error)
}
