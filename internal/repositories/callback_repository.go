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

// CallbackRepository stores the append-only gateway audit trail.
type CallbackRepository struct {
	DB *sql.DB
}

func (r CallbackRepository) Insert(ctx context.Context, l models.PaymentCallbackLog) (int64, error) {
	var amount any
	if l.Amount != nil {
		amount = *l.Amount
	}
	source := l.Source
	if source == "" {
		source = models.SourceCallback
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO hubtel_callbacks (
			client_reference, checkout_id, transaction_id, response_code,
			status, amount, source, raw_payload, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ClientReference,
		intdb.NullIfEmpty(l.CheckoutID),
		intdb.NullIfEmpty(l.TransactionID),
		intdb.NullIfEmpty(l.ResponseCode),
		l.Status,
		amount,
		source,
		l.RawPayload,
		l.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert callback log: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// CallbackFilter narrows the audit listing.
type CallbackFilter struct {
	ClientReference string
	Source          string
	Limit           int
	Offset          int
}

func (r CallbackRepository) List(ctx context.Context, f CallbackFilter) ([]models.PaymentCallbackLog, error) {
	where := []string{"1=1"}
	args := []any{}
	if v := strings.TrimSpace(f.ClientReference); v != "" {
		where = append(where, "client_reference=?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.Source); v != "" {
		where = append(where, "source=?")
		args = append(args, v)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id,
		       client_reference,
		       COALESCE(checkout_id,''),
		       COALESCE(transaction_id,''),
		       COALESCE(response_code,''),
		       status,
		       amount,
		       source,
		       raw_payload,
		       created_at
		FROM hubtel_callbacks
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("list callback logs: %w", err)
	}
	defer rows.Close()

	out := []models.PaymentCallbackLog{}
	for rows.Next() {
		var (
			l      models.PaymentCallbackLog
			amount decimal.NullDecimal
		)
		if err := rows.Scan(
			&l.ID,
			&l.ClientReference,
			&l.CheckoutID,
			&l.TransactionID,
			&l.ResponseCode,
			&l.Status,
			&amount,
			&l.Source,
			&l.RawPayload,
			&l.CreatedAt,
		); err != nil {
			return out, err
		}
		if amount.Valid {
			a := amount.Decimal
			l.Amount = &a
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
