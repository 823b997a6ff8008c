package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/gateways/hubtel"
	"quarhire/internal/gateways/paystack"
	"quarhire/internal/mailer"
	"quarhire/internal/repositories"

	"github.com/shopspring/decimal"
)

type memBookings struct {
	mu       sync.Mutex
	byRef    map[string]models.Booking
	markPaid int
}

func newMemBookings(bs ...models.Booking) *memBookings {
	m := &memBookings{byRef: map[string]models.Booking{}}
	for _, b := range bs {
		m.byRef[b.ClientReference] = b
	}
	return m
}

func (m *memBookings) Create(_ context.Context, b models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byRef[b.ClientReference]; ok {
		return domain.ConflictError{Resource: "booking"}
	}
	m.byRef[b.ClientReference] = b
	return nil
}

func (m *memBookings) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.byRef {
		if f.Status == "" || b.Status == f.Status {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientReference < out[j].ClientReference })
	return out, nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.byRef {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

func (m *memBookings) GetByReference(_ context.Context, ref string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byRef[ref]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (m *memBookings) MarkPaid(_ context.Context, ref, txn string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byRef[ref]
	if !ok || b.Status != models.StatusPending {
		return false, nil
	}
	b.Status = models.StatusPaid
	b.HubtelTransactionID = txn
	b.PaymentVerifiedAt = &at
	m.byRef[ref] = b
	m.markPaid++
	return true, nil
}

func (m *memBookings) TransitionStatus(_ context.Context, id string, from, to models.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ref, b := range m.byRef {
		if b.ID == id && b.Status == from {
			b.Status = to
			m.byRef[ref] = b
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookings) AssignDriver(_ context.Context, id string, driverID *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ref, b := range m.byRef {
		if b.ID == id {
			b.DriverID = driverID
			m.byRef[ref] = b
		}
	}
	return nil
}

func (m *memBookings) get(ref string) models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byRef[ref]
}

type memCallbacks struct {
	mu   sync.Mutex
	rows []models.PaymentCallbackLog
}

func (m *memCallbacks) Insert(_ context.Context, l models.PaymentCallbackLog) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, l)
	return l.ID, nil
}

func (m *memCallbacks) List(_ context.Context, f repositories.CallbackFilter) ([]models.PaymentCallbackLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.PaymentCallbackLog{}
	for _, r := range m.rows {
		if f.ClientReference == "" || r.ClientReference == f.ClientReference {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCallbacks) statuses() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for _, r := range m.rows {
		out = append(out, r.Status)
	}
	return out
}

type scriptedGateway struct {
	statuses map[string]hubtel.TransactionStatus
	err      error
	checkout hubtel.CheckoutResult
	lastReq  hubtel.CheckoutRequest
}

func (g *scriptedGateway) Configured() bool { return true }

func (g *scriptedGateway) InitiateCheckout(_ context.Context, req hubtel.CheckoutRequest) (hubtel.CheckoutResult, error) {
	g.lastReq = req
	return g.checkout, g.err
}

func (g *scriptedGateway) GetTransactionStatus(_ context.Context, ref string) (hubtel.TransactionStatus, error) {
	if g.err != nil {
		return hubtel.TransactionStatus{}, g.err
	}
	st, ok := g.statuses[ref]
	if !ok {
		return hubtel.TransactionStatus{ClientReference: ref, Status: hubtel.StatusUnknown}, nil
	}
	return st, nil
}

type scriptedPaystack struct {
	result paystack.Verification
	err    error
}

func (p scriptedPaystack) VerifyTransaction(_ context.Context, ref string) (paystack.Verification, error) {
	v := p.result
	v.Reference = ref
	return v, p.err
}

type recordingMailer struct {
	mu          sync.Mutex
	sent        []mailer.Message
	err         error
	unavailable bool
}

func (r *recordingMailer) Configured() bool { return !r.unavailable }

func (r *recordingMailer) Send(_ context.Context, msg mailer.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.sent = append(r.sent, msg)
	return fmt.Sprintf("msg-%d", len(r.sent)), nil
}

func (r *recordingMailer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *recordingMailer) recipients() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, m := range r.sent {
		out = append(out, m.To...)
	}
	return out
}

type memDrivers struct {
	rows map[int64]models.Driver
	next int64
}

func newMemDrivers(ds ...models.Driver) *memDrivers {
	m := &memDrivers{rows: map[int64]models.Driver{}}
	for _, d := range ds {
		m.rows[d.ID] = d
		if d.ID > m.next {
			m.next = d.ID
		}
	}
	return m
}

func (m *memDrivers) List(_ context.Context, status string) ([]models.Driver, error) {
	out := []models.Driver{}
	for _, d := range m.rows {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDrivers) GetByID(_ context.Context, id int64) (models.Driver, error) {
	d, ok := m.rows[id]
	if !ok {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	return d, nil
}

func (m *memDrivers) Create(_ context.Context, d models.Driver) (int64, error) {
	m.next++
	d.ID = m.next
	m.rows[d.ID] = d
	return d.ID, nil
}

func (m *memDrivers) Update(_ context.Context, d models.Driver) error {
	m.rows[d.ID] = d
	return nil
}

func (m *memDrivers) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.NotFoundError{Resource: "driver"}
	}
	delete(m.rows, id)
	return nil
}

type memProfiles map[string]models.Profile

func (m memProfiles) GetByID(_ context.Context, id string) (models.Profile, error) {
	p, ok := m[id]
	if !ok {
		return models.Profile{}, domain.NotFoundError{Resource: "profile"}
	}
	return p, nil
}

type memFinance []repositories.FinanceRow

func (m memFinance) ListBuckets(context.Context, string, string) ([]repositories.FinanceRow, error) {
	return m, nil
}

func pendingBooking(ref string, price int64) models.Booking {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return models.Booking{
		ID:              "id-" + ref,
		ClientReference: ref,
		FullName:        "Ama Mensah",
		Email:           "ama@example.com",
		Phone:           "0241234567",
		PickupLocation:  "Kotoka International Airport T3",
		Destination:     "East Legon",
		PickupDate:      "2025-03-02",
		PickupTime:      "14:30",
		VehicleType:     "sedan",
		Passengers:      2,
		Price:           decimal.NewFromInt(price),
		Currency:        "GHS",
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func newNotifier(m *recordingMailer, bookings BookingStore) NotificationService {
	return NotificationService{
		Mailer:          m,
		Bookings:        bookings,
		Docs:            DocsService{Bookings: bookings},
		AdminEmail:      "ops@quarhire.test",
		SupportPhone:    "+233 20 000 0000",
		SupportWhatsApp: "https://wa.me/233200000000",
	}
}
