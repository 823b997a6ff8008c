package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

const driverColumns = `id, name, phone, vehicle_model, vehicle_plate, status, created_at, updated_at`

func scanDriver(row rowScanner) (models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.VehicleModel,
		&d.VehiclePlate,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r DriverRepository) List(ctx context.Context, status string) ([]models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	args := []any{}
	if status != "" {
		query += ` WHERE status=?`
		args = append(args, status)
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
		}
		return models.Driver{}, fmt.Errorf("get driver: %w", err)
	}
	return d, nil
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO drivers (name, phone, vehicle_model, vehicle_plate, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Phone, d.VehicleModel, d.VehiclePlate, d.Status, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert driver: %w", err)
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	if _, err := r.DB.ExecContext(ctx, `
		UPDATE drivers
		SET name=?, phone=?, vehicle_model=?, vehicle_plate=?, status=?, updated_at=?
		WHERE id=?`,
		d.Name, d.Phone, d.VehicleModel, d.VehiclePlate, d.Status, time.Now().UTC(), d.ID,
	); err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// Delete removes a driver; bookings keep their row with driver_id set NULL.
func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}
