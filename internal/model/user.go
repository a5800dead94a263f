package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff and customer roles.
// Role "pending" is assigned at registration until an admin approves the
// account and picks the real role.
const (
	RoleSuperAdmin      = "super_admin"
	RoleAdmin           = "admin"
	RoleKepalaGudang    = "kepala_gudang"
	RoleKepalaProduksi  = "kepala_produksi"
	RoleKepalaPenjualan = "kepala_penjualan"
	RolePenjualan       = "penjualan"
	RoleMember          = "member"
	RoleCustomer        = "customer"
	RolePending         = "pending"
)

// Departments used for landing-page fallback when the role itself does not
// determine one.
const (
	DeptGudang    = "gudang"
	DeptProduksi  = "produksi"
	DeptPenjualan = "penjualan"
)

// StaffRoles lists every role that counts as staff (can log in on the staff
// surface and appears in payroll / performance reports).
var StaffRoles = []string{
	RoleSuperAdmin, RoleAdmin, RoleKepalaGudang, RoleKepalaProduksi,
	RoleKepalaPenjualan, RolePenjualan, RoleMember,
}

// IsStaffRole reports whether role belongs to the staff set.
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// PointEvent is one line of a user's performance point history.
type PointEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
}

// User is a staff member or customer account.
// Accounts are created unapproved with role "pending" and are never
// hard-deleted; approval flips IsApproved and assigns the final role.
type User struct {
	ID               uuid.UUID    `json:"uid"`
	Username         string       `json:"username"`
	FullName         string       `json:"fullName"`
	Email            string       `json:"email,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	// Serialized so password hashes survive snapshot restarts; API responses
	// go through dto.UserResponse and never expose this struct.
	PasswordHash     string       `json:"passwordHash"`
	Role             string       `json:"role"`
	Department       string       `json:"department,omitempty"`
	IsApproved       bool         `json:"isApproved"`
	Address          Address      `json:"address"`
	PerformanceScore int          `json:"performanceScore"`
	PointHistory     []PointEvent `json:"pointHistory,omitempty"`
	LastSurveyDate   *time.Time   `json:"lastSurveyDate,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// LoginRef is one entry of the most-recently-used login list shown on the
// login screen. Capped at 5, de-duplicated by user id, most recent first.
type LoginRef struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
}
