package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/mailer"
	"quarhire/internal/monitoring"
	"quarhire/internal/utils"

	"github.com/shopspring/decimal"
)

// NotificationService sends every transactional email of the site.
type NotificationService struct {
	Mailer          Mailer
	Bookings        BookingStore
	Docs            DocsService
	AdminEmail      string
	SupportPhone    string
	SupportWhatsApp string
}

type BookingEmailInput struct {
	ClientReference string              `json:"clientReference"`
	FullName        string              `json:"fullName"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	PickupLocation  string              `json:"pickupLocation"`
	Destination     string              `json:"destination"`
	PickupDate      string              `json:"pickupDate"`
	PickupTime      string              `json:"pickupTime"`
	FlightNumber    string              `json:"flightNumber"`
	VehicleType     string              `json:"vehicleType"`
	Passengers      int                 `json:"passengers"`
	Price           decimal.NullDecimal `json:"price"`
	Notes           string              `json:"notes"`
}

type InvoiceEmailInput struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendResult lists provider message ids of the emails that went out.
type SendResult struct {
	CustomerEmailID string `json:"customerEmailId,omitempty"`
	AdminEmailID    string `json:"adminEmailId,omitempty"`
}

func (s NotificationService) ready() error {
	if s.Mailer == nil || !s.Mailer.Configured() {
		return mailer.ErrNotConfigured
	}
	return nil
}

func (s NotificationService) base() emailData {
	return emailData{SupportPhone: s.SupportPhone, SupportWhatsApp: s.SupportWhatsApp}
}

func (s NotificationService) send(ctx context.Context, kind, tmpl string, data emailData, msg mailer.Message) (string, error) {
	html, err := renderEmail(tmpl, data)
	if err != nil {
		return "", domain.InternalError{Msg: "render email", Err: err}
	}
	msg.HTML = html
	id, err := s.Mailer.Send(ctx, msg)
	monitoring.RecordEmail(kind, err)
	if err != nil {
		return "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "email", kind, "sent id="+id)
	return id, nil
}

// SendBookingEmails acknowledges a booking request to the customer and
// notifies the admin inbox.
func (s NotificationService) SendBookingEmails(ctx context.Context, in BookingEmailInput) (SendResult, error) {
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
	if err := fe.err(); err != nil {
		return SendResult{}, err
	}
	if err := s.ready(); err != nil {
		return SendResult{}, err
	}

	data := s.base()
	data.ClientReference = strings.TrimSpace(in.ClientReference)
	data.FullName = utils.NormalizeSpace(in.FullName)
	data.Email = strings.TrimSpace(in.Email)
	data.Phone = strings.TrimSpace(in.Phone)
	data.PickupLocation = in.PickupLocation
	data.Destination = in.Destination
	data.PickupDate = in.PickupDate
	data.PickupTime = in.PickupTime
	data.FlightNumber = in.FlightNumber
	data.VehicleType = in.VehicleType
	data.Passengers = in.Passengers
	data.Notes = in.Notes
	if in.Price.Valid && in.Price.Decimal.IsPositive() {
		data.Amount = utils.FormatMoney(utils.DefaultCurrency, in.Price.Decimal)
	}

	var out SendResult
	id, err := s.send(ctx, "booking_customer", "booking_customer", data, mailer.Message{
		To:      []string{data.Email},
		Subject: "We received your Quarhire booking",
	})
	if err != nil {
		return out, err
	}
	out.CustomerEmailID = id

	if admin := strings.TrimSpace(s.AdminEmail); admin != "" {
		id, err := s.send(ctx, "booking_admin", "booking_admin", data, mailer.Message{
			To:      []string{admin},
			ReplyTo: data.Email,
			Subject: "New booking: " + utils.FirstNonEmpty(data.ClientReference, data.FullName),
		})
		if err != nil {
			utils.LogWarn(utils.RequestIDFrom(ctx), "email", "booking_admin", err)
		}
		out.AdminEmailID = id
	}
	return out, nil
}

// SendPaymentConfirmation emails the customer and the admin inbox about a
// paid booking. Both are attempted even when one fails.
func (s NotificationService) SendPaymentConfirmation(ctx context.Context, b models.Booking) error {
	if err := s.ready(); err != nil {
		return err
	}
	data := s.bookingData(b)

	var errs []error
	if _, err := s.send(ctx, "payment_customer", "payment_customer", data, mailer.Message{
		To:      []string{b.Email},
		Subject: "Payment received: booking " + b.ClientReference,
	}); err != nil {
		errs = append(errs, fmt.Errorf("customer: %w", err))
	}
	if admin := strings.TrimSpace(s.AdminEmail); admin != "" {
		if _, err := s.send(ctx, "payment_admin", "payment_admin", data, mailer.Message{
			To:      []string{admin},
			ReplyTo: b.Email,
			Subject: "Paid booking " + b.ClientReference,
		}); err != nil {
			errs = append(errs, fmt.Errorf("admin: %w", err))
		}
	}
	return errors.Join(errs...)
}

// SendInvoice emails the PDF invoice of a booking to the given address.
func (s NotificationService) SendInvoice(ctx context.Context, in InvoiceEmailInput) (SendResult, error) {
	var fe fieldErrors
	fe.require(field{"bookingId", in.BookingID}, field{"email", in.Email})
	fe.email("email", in.Email)
	if err := fe.err(); err != nil {
		return SendResult{}, err
	}
	if err := s.ready(); err != nil {
		return SendResult{}, err
	}

	b, err := s.Bookings.GetByID(ctx, strings.TrimSpace(in.BookingID))
	if err != nil {
		return SendResult{}, err
	}
	pdf, filename, err := s.Docs.BuildInvoice(b)
	if err != nil {
		return SendResult{}, domain.InternalError{Msg: "generate invoice", Err: err}
	}

	data := s.bookingData(b)
	data.InvoiceNumber = InvoiceNumber(b)
	id, err := s.send(ctx, "invoice", "invoice", data, mailer.Message{
		To:          []string{strings.TrimSpace(in.Email)},
		Subject:     "Invoice " + data.InvoiceNumber,
		Attachments: []mailer.Attachment{{Filename: filename, Content: pdf}},
	})
	if err != nil {
		return SendResult{}, err
	}
	return SendResult{CustomerEmailID: id}, nil
}

// SendContact forwards a website contact form to the admin inbox.
func (s NotificationService) SendContact(ctx context.Context, in ContactInput) (SendResult, error) {
	var fe fieldErrors
	fe.require(field{"name", in.Name}, field{"email", in.Email}, field{"message", in.Message})
	fe.email("email", in.Email)
	if err := fe.err(); err != nil {
		return SendResult{}, err
	}
	if err := s.ready(); err != nil {
		return SendResult{}, err
	}
	admin := strings.TrimSpace(s.AdminEmail)
	if admin == "" {
		return SendResult{}, domain.ConfigError{Service: "admin email"}
	}

	data := s.base()
	data.FullName = utils.NormalizeSpace(in.Name)
	data.Email = strings.TrimSpace(in.Email)
	data.Phone = strings.TrimSpace(in.Phone)
	data.Subject = strings.TrimSpace(in.Subject)
	data.Message = strings.TrimSpace(in.Message)

	id, err := s.send(ctx, "contact", "contact", data, mailer.Message{
		To:      []string{admin},
		ReplyTo: data.Email,
		Subject: "Contact form: " + utils.FirstNonEmpty(data.Subject, data.FullName),
	})
	if err != nil {
		return SendResult{}, err
	}
	return SendResult{AdminEmailID: id}, nil
}

func (s NotificationService) bookingData(b models.Booking) emailData {
	data := s.base()
	data.ClientReference = b.ClientReference
	data.FullName = b.FullName
	data.Email = b.Email
	data.Phone = b.Phone
	data.PickupLocation = b.PickupLocation
	data.Destination = b.Destination
	data.PickupDate = b.PickupDate
	data.PickupTime = b.PickupTime
	data.FlightNumber = b.FlightNumber
	data.VehicleType = b.VehicleType
	data.Passengers = b.Passengers
	data.Notes = b.Notes
	data.TransactionID = b.HubtelTransactionID
	if !b.Price.IsZero() {
		data.Amount = utils.FormatMoney(b.Currency, b.Price)
	}
	return data
}
