package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// AdminSession is the verified caller of an admin endpoint.
type AdminSession struct {
	UserID  string         `json:"id"`
	Email   string         `json:"email"`
	Profile models.Profile `json:"profile"`
}

// sessionClaims are the claims the hosted auth platform puts in its access tokens.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService verifies access tokens issued by the hosted auth platform and
// checks the caller's role. It never issues tokens itself.
type AuthService struct {
	Secret   []byte
	Profiles ProfileStore
	Now      func() time.Time
}

// RequireAdmin returns the session of an admin or staff caller, or nil for
// anyone else. There is no default-allow path.
func (s AuthService) RequireAdmin(ctx context.Context, bearer string) *AdminSession {
	sess, err := s.Authenticate(ctx, bearer)
	if err != nil {
		utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "require_admin", "denied: "+err.Error())
		return nil
	}
	return sess
}

// Authenticate is RequireAdmin with the denial reason kept for logging.
func (s AuthService) Authenticate(ctx context.Context, bearer string) (*AdminSession, error) {
	raw := strings.TrimSpace(bearer)
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		raw = strings.TrimSpace(raw[len("bearer "):])
	}
	if raw == "" {
		return nil, domain.ForbiddenError{Msg: "missing token"}
	}
	if len(s.Secret) == 0 {
		return nil, domain.ConfigError{Service: "auth"}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(s.Now))
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, opts...)
	if err != nil {
		return nil, domain.ForbiddenError{Msg: fmt.Sprintf("invalid token: %v", err)}
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, domain.ForbiddenError{Msg: "token has no subject"}
	}

	profile, err := s.Profiles.GetByID(ctx, claims.Subject)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ForbiddenError{Msg: "no profile for user"}
		}
		return nil, err
	}
	if !profile.IsStaff() {
		return nil, domain.ForbiddenError{Msg: "role " + profile.Role + " is not allowed"}
	}
	return &AdminSession{
		UserID:  claims.Subject,
		Email:   utils.FirstNonEmpty(claims.Email, profile.Email),
		Profile: profile,
	}, nil
}

// ErrNoSession is what handlers report when RequireAdmin returned nil.
var ErrNoSession = errors.New("admin access required")
