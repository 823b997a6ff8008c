package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/gateways/hubtel"
	"quarhire/internal/monitoring"
	"quarhire/internal/repositories"
	"quarhire/internal/utils"

	"github.com/shopspring/decimal"
)

// PaymentService reconciles gateway payments with bookings. Every path that
// can mark a booking paid ends in settle, which relies on the store's
// guarded pending -> paid update.
type PaymentService struct {
	Bookings  BookingStore
	Callbacks CallbackLogStore
	Gateway   PaymentGateway
	Legacy    LegacyGateway
	Notifier  PaymentNotifier
	Now       func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type CheckoutInput struct {
	TotalAmount     decimal.NullDecimal `json:"totalAmount"`
	Description     string              `json:"description"`
	ClientReference string              `json:"clientReference"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
}

// InitiateCheckout opens a hosted checkout for a pending booking.
func (s PaymentService) InitiateCheckout(ctx context.Context, in CheckoutInput) (hubtel.CheckoutResult, error) {
	var fe fieldErrors
	if !in.TotalAmount.Valid {
		fe.missing = append(fe.missing, "totalAmount")
	}
	fe.require(
		field{"description", in.Description},
		field{"clientReference", in.ClientReference},
		field{"name", in.Name},
		field{"email", in.Email},
		field{"phone", in.Phone},
	)
	fe.invalidIf(in.TotalAmount.Valid && !in.TotalAmount.Decimal.IsPositive(), "totalAmount")
	fe.email("email", in.Email)
	if err := fe.err(); err != nil {
		return hubtel.CheckoutResult{}, err
	}
	if s.Gateway == nil || !s.Gateway.Configured() {
		return hubtel.CheckoutResult{}, hubtel.ErrNotConfigured
	}

	ref := strings.TrimSpace(in.ClientReference)
	booking, err := s.Bookings.GetByReference(ctx, ref)
	if err != nil {
		return hubtel.CheckoutResult{}, err
	}
	if booking.Status != models.StatusPending {
		return hubtel.CheckoutResult{}, domain.StateError{
			Resource: "booking",
			Current:  string(booking.Status),
			Msg:      fmt.Sprintf("booking %s is already %s", ref, booking.Status),
		}
	}
	amount := in.TotalAmount.Decimal.Round(2)
	if !booking.Price.IsZero() && !booking.Price.Equal(amount) {
		utils.LogEvent(utils.RequestIDFrom(ctx), "payment", "checkout",
			fmt.Sprintf("amount %s differs from booking price %s ref=%s", amount, booking.Price, ref))
	}

	out, err := s.Gateway.InitiateCheckout(ctx, hubtel.CheckoutRequest{
		TotalAmount:       amount,
		Description:       strings.TrimSpace(in.Description),
		ClientReference:   ref,
		PayeeName:         utils.NormalizeSpace(in.Name),
		PayeeMobileNumber: utils.NormalizePhone(in.Phone),
		PayeeEmail:        strings.TrimSpace(in.Email),
	})
	if err != nil {
		return hubtel.CheckoutResult{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "payment", "checkout", "checkout created ref="+ref+" checkout_id="+out.CheckoutID)
	return out, nil
}

type CallbackResult struct {
	ClientReference string               `json:"clientReference"`
	Succeeded       bool                 `json:"succeeded"`
	Transitioned    bool                 `json:"transitioned"`
	BookingStatus   models.BookingStatus `json:"bookingStatus,omitempty"`
}

// HandleCallback records the raw body before anything else, then settles the
// booking when the gateway reports success.
func (s PaymentService) HandleCallback(ctx context.Context, raw []byte) (CallbackResult, error) {
	reqID := utils.RequestIDFrom(ctx)
	payload, parseErr := hubtel.ParseCallback(raw)

	entry := models.PaymentCallbackLog{
		ClientReference: payload.Data.ClientReference,
		CheckoutID:      payload.Data.CheckoutID,
		TransactionID:   payload.Transaction(),
		ResponseCode:    payload.ResponseCode,
		Status:          utils.FirstNonEmpty(payload.Data.Status, payload.Status),
		Source:          models.SourceCallback,
		RawPayload:      string(raw),
		CreatedAt:       s.now(),
	}
	if payload.Data.Amount.Valid {
		a := payload.Data.Amount.Decimal
		entry.Amount = &a
	}
	if parseErr != nil {
		entry.Status = "malformed"
	}
	if _, err := s.Callbacks.Insert(ctx, entry); err != nil {
		monitoring.RecordReconciliation(models.SourceCallback, monitoring.OutcomeError)
		return CallbackResult{}, fmt.Errorf("record callback: %w", err)
	}
	if parseErr != nil {
		monitoring.RecordReconciliation(models.SourceCallback, monitoring.OutcomeError)
		utils.LogWarn(reqID, "payment", "callback_parse", parseErr)
		return CallbackResult{}, domain.InternalError{Msg: "malformed callback payload", Err: parseErr}
	}

	ref := payload.Data.ClientReference
	res := CallbackResult{ClientReference: ref, Succeeded: payload.Succeeded()}
	if !res.Succeeded {
		utils.LogEvent(reqID, "payment", "callback", fmt.Sprintf("non-success callback ref=%s code=%s status=%s", ref, payload.ResponseCode, entry.Status))
		monitoring.RecordReconciliation(models.SourceCallback, monitoring.OutcomeFailed)
		return res, nil
	}

	booking, err := s.Bookings.GetByReference(ctx, ref)
	if err != nil {
		monitoring.RecordReconciliation(models.SourceCallback, monitoring.OutcomeError)
		return res, err
	}
	if payload.Data.Amount.Valid {
		warnAmountMismatch(reqID, booking, payload.Data.Amount.Decimal)
	}
	transitioned, status, err := s.settle(ctx, booking, payload.Transaction(), models.SourceCallback)
	if err != nil {
		return res, err
	}
	res.Transitioned = transitioned
	res.BookingStatus = status
	return res, nil
}

type VerifyOptions struct {
	// Audit writes a manual_verify_<Status> row to the callback log.
	Audit  bool
	Source string
}

type VerifyResult struct {
	ClientReference string                    `json:"clientReference"`
	GatewayStatus   string                    `json:"gatewayStatus"`
	Paid            bool                      `json:"paid"`
	Transitioned    bool                      `json:"transitioned"`
	BookingStatus   models.BookingStatus      `json:"bookingStatus,omitempty"`
	Transaction     *hubtel.TransactionStatus `json:"transaction,omitempty"`
}

// Verify polls the gateway for a reference and settles the booking when the
// gateway says Paid. Gateway failures come back as errors, never as a status.
func (s PaymentService) Verify(ctx context.Context, clientReference string, opts VerifyOptions) (VerifyResult, error) {
	source := opts.Source
	if source == "" {
		source = models.SourceStatusCheck
	}
	ref := strings.TrimSpace(clientReference)
	if ref == "" {
		return VerifyResult{}, domain.ValidationError{Missing: []string{"clientReference"}}
	}
	if s.Gateway == nil || !s.Gateway.Configured() {
		return VerifyResult{}, hubtel.ErrNotConfigured
	}

	st, err := s.Gateway.GetTransactionStatus(ctx, ref)
	if err != nil {
		monitoring.RecordReconciliation(source, monitoring.OutcomeError)
		return VerifyResult{}, err
	}

	if opts.Audit {
		raw, _ := json.Marshal(st)
		amount := st.Amount
		entry := models.PaymentCallbackLog{
			ClientReference: ref,
			TransactionID:   st.TransactionID,
			Status:          "manual_verify_" + string(st.Status),
			Amount:          &amount,
			Source:          source,
			RawPayload:      string(raw),
			CreatedAt:       s.now(),
		}
		if _, err := s.Callbacks.Insert(ctx, entry); err != nil {
			utils.LogWarn(utils.RequestIDFrom(ctx), "payment", "verify_audit", err)
		}
	}

	res := VerifyResult{
		ClientReference: ref,
		GatewayStatus:   string(st.Status),
		Paid:            st.Status == hubtel.StatusPaid,
		Transaction:     &st,
	}
	if !res.Paid {
		monitoring.RecordReconciliation(source, monitoring.OutcomeNotPaid)
		return res, nil
	}

	booking, err := s.Bookings.GetByReference(ctx, ref)
	if err != nil {
		monitoring.RecordReconciliation(source, monitoring.OutcomeError)
		return res, err
	}
	warnAmountMismatch(utils.RequestIDFrom(ctx), booking, st.Amount)
	res.Transitioned, res.BookingStatus, err = s.settle(ctx, booking, st.TransactionID, source)
	return res, err
}

// VerifyPaystack runs a legacy Paystack reference through the same guarded
// transition. Hubtel remains the primary gateway.
func (s PaymentService) VerifyPaystack(ctx context.Context, reference string) (VerifyResult, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return VerifyResult{}, domain.ValidationError{Missing: []string{"reference"}}
	}
	if s.Legacy == nil {
		return VerifyResult{}, domain.ConfigError{Service: "paystack"}
	}
	v, err := s.Legacy.VerifyTransaction(ctx, ref)
	if err != nil {
		monitoring.RecordReconciliation(models.SourcePaystackVerify, monitoring.OutcomeError)
		return VerifyResult{}, err
	}

	raw, _ := json.Marshal(v)
	amount := v.Amount
	if _, err := s.Callbacks.Insert(ctx, models.PaymentCallbackLog{
		ClientReference: ref,
		TransactionID:   v.GatewayID,
		Status:          "paystack_" + v.Status,
		Amount:          &amount,
		Source:          models.SourcePaystackVerify,
		RawPayload:      string(raw),
		CreatedAt:       s.now(),
	}); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "payment", "paystack_audit", err)
	}

	res := VerifyResult{ClientReference: ref, GatewayStatus: string(hubtel.StatusUnpaid), Paid: v.Paid}
	if !v.Paid {
		monitoring.RecordReconciliation(models.SourcePaystackVerify, monitoring.OutcomeNotPaid)
		return res, nil
	}
	res.GatewayStatus = string(hubtel.StatusPaid)

	booking, err := s.Bookings.GetByReference(ctx, ref)
	if err != nil {
		monitoring.RecordReconciliation(models.SourcePaystackVerify, monitoring.OutcomeError)
		return res, err
	}
	res.Transitioned, res.BookingStatus, err = s.settle(ctx, booking, "paystack:"+v.GatewayID, models.SourcePaystackVerify)
	return res, err
}

// ResendConfirmation re-sends the payment emails of an already paid booking.
func (s PaymentService) ResendConfirmation(ctx context.Context, clientReference string) (models.Booking, error) {
	ref := strings.TrimSpace(clientReference)
	if ref == "" {
		return models.Booking{}, domain.ValidationError{Missing: []string{"clientReference"}}
	}
	booking, err := s.Bookings.GetByReference(ctx, ref)
	if err != nil {
		return models.Booking{}, err
	}
	if !booking.Status.Settled() {
		return booking, domain.StateError{
			Resource: "booking",
			Current:  string(booking.Status),
			Msg:      fmt.Sprintf("booking %s is not paid", ref),
		}
	}
	if s.Notifier == nil {
		return booking, domain.ConfigError{Service: "email"}
	}
	return booking, s.Notifier.SendPaymentConfirmation(ctx, booking)
}

// ListCallbacks returns the audit trail for the admin dashboard.
func (s PaymentService) ListCallbacks(ctx context.Context, ref, source string, p domain.Pagination) ([]models.PaymentCallbackLog, error) {
	p = p.Normalize()
	return s.Callbacks.List(ctx, callbackFilter(ref, source, p))
}

// settle performs the guarded pending -> paid update. Confirmation emails go
// out only when this call is the one that changed the row.
func (s PaymentService) settle(ctx context.Context, booking models.Booking, transactionID, source string) (bool, models.BookingStatus, error) {
	reqID := utils.RequestIDFrom(ctx)
	if booking.Status != models.StatusPending {
		if booking.Status == models.StatusCancelled {
			utils.LogEvent(reqID, "payment", source, "payment reported for cancelled booking ref="+booking.ClientReference)
			monitoring.RecordReconciliation(source, monitoring.OutcomeSkipped)
			return false, booking.Status, nil
		}
		monitoring.RecordReconciliation(source, monitoring.OutcomeAlreadyPaid)
		return false, booking.Status, nil
	}

	at := s.now()
	changed, err := s.Bookings.MarkPaid(ctx, booking.ClientReference, transactionID, at)
	if err != nil {
		monitoring.RecordReconciliation(source, monitoring.OutcomeError)
		return false, booking.Status, err
	}
	if !changed {
		monitoring.RecordReconciliation(source, monitoring.OutcomeAlreadyPaid)
		current, err := s.Bookings.GetByReference(ctx, booking.ClientReference)
		if err != nil {
			utils.LogWarn(reqID, "payment", "reload_after_mark_paid", err)
			return false, booking.Status, nil
		}
		return false, current.Status, nil
	}

	monitoring.RecordReconciliation(source, monitoring.OutcomeTransitioned)
	utils.LogEvent(reqID, "payment", source, "booking marked paid ref="+booking.ClientReference)

	booking.Status = models.StatusPaid
	booking.HubtelTransactionID = transactionID
	booking.PaymentVerifiedAt = &at
	booking.UpdatedAt = at
	if s.Notifier != nil {
		if err := s.Notifier.SendPaymentConfirmation(ctx, booking); err != nil {
			utils.LogWarn(reqID, "payment", "confirmation_email", err)
		}
	}
	return true, models.StatusPaid, nil
}

func warnAmountMismatch(reqID string, b models.Booking, paid decimal.Decimal) {
	if b.Price.IsZero() || paid.IsZero() || b.Price.Equal(paid) {
		return
	}
	utils.LogWarn(reqID, "payment", "amount_check",
		fmt.Errorf("paid %s but booking %s is priced %s", paid, b.ClientReference, b.Price))
}

func callbackFilter(ref, source string, p domain.Pagination) repositories.CallbackFilter {
	return repositories.CallbackFilter{
		ClientReference: ref,
		Source:          source,
		Limit:           p.PageSize,
		Offset:          p.Offset(),
	}
}
