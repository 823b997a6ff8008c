package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "quarhire/internal/db"
	"quarhire/internal/domain"
	"quarhire/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const bookingColumns = `
	id,
	client_reference,
	full_name,
	email,
	phone,
	pickup_location,
	destination,
	pickup_date,
	pickup_time,
	flight_number,
	vehicle_type,
	passengers,
	luggage,
	price,
	currency,
	status,
	notes,
	driver_id,
	hubtel_transaction_id,
	payment_verified_at,
	created_at,
	updated_at`

type BookingRepository struct {
	DB *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b          models.Booking
		status     string
		flight     sql.NullString
		notes      sql.NullString
		driverID   sql.NullInt64
		txnID      sql.NullString
		verifiedAt sql.NullTime
	)
	if err := row.Scan(
		&b.ID,
		&b.ClientReference,
		&b.FullName,
		&b.Email,
		&b.Phone,
		&b.PickupLocation,
		&b.Destination,
		&b.PickupDate,
		&b.PickupTime,
		&flight,
		&b.VehicleType,
		&b.Passengers,
		&b.Luggage,
		&b.Price,
		&b.Currency,
		&status,
		&notes,
		&driverID,
		&txnID,
		&verifiedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	b.FlightNumber = flight.String
	b.Notes = notes.String
	b.HubtelTransactionID = txnID.String
	if driverID.Valid {
		id := driverID.Int64
		b.DriverID = &id
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		b.PaymentVerifiedAt = &t
	}
	return b, nil
}

// Create inserts a new booking. A reused client reference is a conflict.
func (r BookingRepository) Create(ctx context.Context, b models.Booking) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (
			id, client_reference, full_name, email, phone,
			pickup_location, destination, pickup_date, pickup_time, flight_number,
			vehicle_type, passengers, luggage, price, currency,
			status, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ClientReference, b.FullName, b.Email, b.Phone,
		b.PickupLocation, b.Destination, b.PickupDate, b.PickupTime, intdb.NullIfEmpty(b.FlightNumber),
		b.VehicleType, b.Passengers, b.Luggage, b.Price, b.Currency,
		string(b.Status), intdb.NullIfEmpty(b.Notes), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "booking", Msg: "client reference already exists", Err: err}
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// List returns bookings newest first.
func (r BookingRepository) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, "(client_reference LIKE ? OR full_name LIKE ? OR email LIKE ? OR phone LIKE ?)")
		args = append(args, like, like, like, like)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE `+strings.Join(where, " AND ")+
			` ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	return r.getOne(ctx, "id", id)
}

func (r BookingRepository) GetByReference(ctx context.Context, ref string) (models.Booking, error) {
	return r.getOne(ctx, "client_reference", ref)
}

func (r BookingRepository) getOne(ctx context.Context, col, val string) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE `+col+`=? LIMIT 1`, val)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, fmt.Errorf("get booking by %s: %w", col, err)
	}
	return b, nil
}

// MarkPaid flips a pending booking to paid. It reports false when the row
// was not pending anymore, which means another request already did it.
func (r BookingRepository) MarkPaid(ctx context.Context, ref, transactionID string, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings
		SET status=?, hubtel_transaction_id=?, payment_verified_at=?, updated_at=?
		WHERE client_reference=? AND status=?`,
		string(models.StatusPaid), intdb.NullIfEmpty(transactionID), at, at,
		ref, string(models.StatusPending),
	)
	if err != nil {
		return false, fmt.Errorf("mark booking paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark booking paid: %w", err)
	}
	return n == 1, nil
}

// TransitionStatus moves a booking from -> to only if it is still in from.
func (r BookingRepository) TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET status=?, updated_at=? WHERE id=? AND status=?`,
		string(to), time.Now().UTC(), id, string(from),
	)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}
	return n == 1, nil
}

// AssignDriver sets or clears (nil) the driver of a booking.
func (r BookingRepository) AssignDriver(ctx context.Context, id string, driverID *int64) error {
	var val any
	if driverID != nil {
		val = *driverID
	}
	if _, err := r.DB.ExecContext(ctx, `UPDATE bookings SET driver_id=?, updated_at=? WHERE id=?`,
		val, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("assign driver: %w", err)
	}
	return nil
}
