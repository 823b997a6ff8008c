package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoice(t *testing.T) {
	b := pendingBooking("QH-20250301-ABC123", 800)
	svc := DocsService{Bookings: newMemBookings(b), Now: func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }}

	pdf, name, err := svc.GenerateInvoice(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "INVOICE_QH-20250301-ABC123_Ama_Mensah.pdf", name)

	_, _, err = svc.GenerateInvoice(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestInvoiceNumberAndPaymentLabel(t *testing.T) {
	b := pendingBooking("QH-20250301-ABC123", 800)
	assert.Equal(t, "INV-QH-20250301-ABC123", InvoiceNumber(b))
	assert.Equal(t, "AWAITING PAYMENT", paymentLabel(b))

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	b.Status = models.StatusPaid
	b.PaymentVerifiedAt = &at
	assert.Equal(t, "PAID (2025-03-01)", paymentLabel(b))

	b.Status = models.StatusCancelled
	assert.Equal(t, "CANCELLED", paymentLabel(b))
}
