package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"quarhire/internal/domain/models"
	"quarhire/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking invoices as PDF.
type DocsService struct {
	Bookings BookingStore
	Now      func() time.Time
}

// GenerateInvoice loads a booking by id and renders its invoice.
func (s DocsService) GenerateInvoice(ctx context.Context, bookingID string) ([]byte, string, error) {
	b, err := s.Bookings.GetByID(ctx, strings.TrimSpace(bookingID))
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "generate_invoice", "ref="+b.ClientReference)
	return s.BuildInvoice(b)
}

// InvoiceNumber is derived from the booking reference so reprints match.
func InvoiceNumber(b models.Booking) string {
	return "INV-" + b.ClientReference
}

func (s DocsService) BuildInvoice(b models.Booking) ([]byte, string, error) {
	issued := time.Now()
	if s.Now != nil {
		issued = s.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+InvoiceNumber(b), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "QUARHIRE INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+InvoiceNumber(b))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+issued.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Reference  : "+b.ClientReference)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Name  : " + safe(b.FullName, "-"),
		"Email : " + safe(b.Email, "-"),
		"Phone : " + safe(b.Phone, "-"),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("Airport transfer %s -> %s on %s at %s, %s",
		safe(b.PickupLocation, "-"), safe(b.Destination, "-"),
		safe(b.PickupDate, "-"), safe(b.PickupTime, "-"),
		safe(b.VehicleType, "vehicle"),
	)
	pdf.MultiCell(0, 6, desc, "", "", false)
	if b.FlightNumber != "" {
		pdf.Cell(0, 6, "Flight: "+b.FlightNumber)
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Passengers: %d   Luggage: %d", b.Passengers, b.Luggage))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(b.Currency, b.Price))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Payment status: "+paymentLabel(b))
	pdf.Ln(7)
	if b.HubtelTransactionID != "" {
		pdf.Cell(0, 7, "Transaction: "+b.HubtelTransactionID)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s_%s.pdf", utils.SafeFilenamePart(b.ClientReference), utils.SafeFilenamePart(b.FullName))
	return buf.Bytes(), filename, nil
}

func paymentLabel(b models.Booking) string {
	switch {
	case b.Status == models.StatusCancelled:
		return "CANCELLED"
	case b.Status.Settled():
		if b.PaymentVerifiedAt != nil {
			return "PAID (" + b.PaymentVerifiedAt.Format("2006-01-02") + ")"
		}
		return "PAID"
	}
	return "AWAITING PAYMENT"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
