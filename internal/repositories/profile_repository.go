package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

func (r ProfileRepository) GetByID(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, full_name, role, created_at
		FROM profiles
		WHERE id=? LIMIT 1`, id).Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, domain.NotFoundError{Resource: "profile", Err: err}
		}
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}
