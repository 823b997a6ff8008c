package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Callback log sources.
const (
	SourceCallback       = "callback"
	SourceManualVerify   = "manual_verify"
	SourceStatusCheck    = "status_check"
	SourcePaystackVerify = "paystack_verify"
	SourceBookingCreate  = "booking_create"
)

// PaymentCallbackLog is an append-only audit row of a gateway payload.
type PaymentCallbackLog struct {
	ID              int64            `json:"id"`
	ClientReference string           `json:"clientReference"`
	CheckoutID      string           `json:"checkoutId,omitempty"`
	TransactionID   string           `json:"transactionId,omitempty"`
	ResponseCode    string           `json:"responseCode,omitempty"`
	Status          string           `json:"status"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Source          string           `json:"source"`
	RawPayload      string           `json:"rawPayload"`
	CreatedAt       time.Time        `json:"createdAt"`
}
