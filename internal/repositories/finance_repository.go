package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "quarhire/internal/db"
	"quarhire/internal/domain/models"

	"github.com/shopspring/decimal"
)

// FinanceRow is one aggregate bucket of bookings.
type FinanceRow struct {
	Status      models.BookingStatus
	Month       string // YYYY-MM of the pickup date
	VehicleType string
	Count       int
	Total       decimal.Decimal
}

type FinanceRepository struct {
	DB *sql.DB
}

// ListBuckets groups bookings by status, pickup month and vehicle type.
// from/to are inclusive YYYY-MM-DD bounds on pickup_date; empty means open.
func (r FinanceRepository) ListBuckets(ctx context.Context, from, to string) ([]FinanceRow, error) {
	if r.DB == nil || !intdb.HasTable(ctx, r.DB, "bookings") {
		return []FinanceRow{}, nil
	}

	where := []string{"1=1"}
	args := []any{}
	if v := strings.TrimSpace(from); v != "" {
		where = append(where, "pickup_date>=?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(to); v != "" {
		where = append(where, "pickup_date<=?")
		args = append(args, v)
	}

	query := fmt.Sprintf(`
		SELECT status,
		       LEFT(pickup_date, 7) AS month,
		       vehicle_type,
		       COUNT(*),
		       COALESCE(SUM(price), 0)
		FROM bookings
		WHERE %s
		GROUP BY status, month, vehicle_type
		ORDER BY month ASC, status ASC, vehicle_type ASC`, strings.Join(where, " AND "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finance buckets: %w", err)
	}
	defer rows.Close()

	out := []FinanceRow{}
	for rows.Next() {
		var (
			rec    FinanceRow
			status string
		)
		if err := rows.Scan(&status, &rec.Month, &rec.VehicleType, &rec.Count, &rec.Total); err != nil {
			return out, err
		}
		rec.Status = models.BookingStatus(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}
