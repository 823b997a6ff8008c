package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Profile is the role-bearing record linked to an auth platform user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsStaff reports whether the profile may use the admin dashboard.
func (p Profile) IsStaff() bool {
	switch strings.ToLower(strings.TrimSpace(p.Role)) {
	case RoleAdmin, RoleStaff:
		return true
	}
	return false
}
