package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Tables owned by the service, in creation order.
var Tables = []string{"profiles", "drivers", "bookings", "hubtel_callbacks"}

var ddl = map[string]string{
	"profiles": `
CREATE TABLE IF NOT EXISTS profiles (
	id CHAR(36) NOT NULL PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	role VARCHAR(32) NOT NULL DEFAULT 'customer',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_profiles_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	"drivers": `
CREATE TABLE IF NOT EXISTS drivers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NOT NULL,
	vehicle_model VARCHAR(128) NOT NULL DEFAULT '',
	vehicle_plate VARCHAR(32) NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	"bookings": `
CREATE TABLE IF NOT EXISTS bookings (
	id CHAR(36) NOT NULL PRIMARY KEY,
	client_reference VARCHAR(64) NOT NULL,
	full_name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NOT NULL,
	pickup_location VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	pickup_date VARCHAR(10) NOT NULL,
	pickup_time VARCHAR(5) NOT NULL,
	flight_number VARCHAR(32) NULL,
	vehicle_type VARCHAR(64) NOT NULL,
	passengers INT NOT NULL DEFAULT 1,
	luggage INT NOT NULL DEFAULT 0,
	price DECIMAL(12,2) NOT NULL DEFAULT 0,
	currency CHAR(3) NOT NULL DEFAULT 'GHS',
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	notes TEXT NULL,
	driver_id BIGINT NULL,
	hubtel_transaction_id VARCHAR(128) NULL,
	payment_verified_at DATETIME NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_bookings_reference (client_reference),
	KEY idx_bookings_status (status),
	KEY idx_bookings_pickup_date (pickup_date),
	CONSTRAINT fk_bookings_driver FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE SET NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	"hubtel_callbacks": `
CREATE TABLE IF NOT EXISTS hubtel_callbacks (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	client_reference VARCHAR(64) NOT NULL DEFAULT '',
	checkout_id VARCHAR(128) NULL,
	transaction_id VARCHAR(128) NULL,
	response_code VARCHAR(16) NULL,
	status VARCHAR(64) NOT NULL DEFAULT '',
	amount DECIMAL(12,2) NULL,
	source VARCHAR(32) NOT NULL DEFAULT 'callback',
	raw_payload MEDIUMTEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_hubtel_callbacks_reference (client_reference)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is not available")
	}
	for _, table := range Tables {
		if HasTable(ctx, db, table) {
			continue
		}
		if _, err := db.ExecContext(ctx, ddl[table]); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
		zap.L().Info("created table", zap.String("table", table))
	}
	return nil
}
