package models

import "time"

// Role is the panel role of a user.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// ParseRole returns the role for s, defaulting unknown values to employee.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin:
		return Role(s)
	default:
		return RoleEmployee
	}
}

// CanAccessPanel reports whether the role may sign in to the dashboard.
func (r Role) CanAccessPanel() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Grantable reports whether the role can be assigned through the role manager.
func (r Role) Grantable() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User carries login credentials.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Profile is the editable personal record of a user or customer.
type Profile struct {
	ID               string     `db:"id" json:"id"`
	Email            *string    `db:"email" json:"email,omitempty"`
	FullName         *string    `db:"full_name" json:"fullName,omitempty"`
	AvatarURL        *string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	DOB              *time.Time `db:"dob" json:"dob,omitempty"`
	PresentAddress   *string    `db:"present_address" json:"presentAddress,omitempty"`
	PermanentAddress *string    `db:"permanent_address" json:"permanentAddress,omitempty"`
	City             *string    `db:"city" json:"city,omitempty"`
	PostalCode       *string    `db:"postal_code" json:"postalCode,omitempty"`
	Country          *string    `db:"country" json:"country,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// CustomerStats is a row of the customer statistics view.
type CustomerStats struct {
	UserID          string     `db:"user_id" json:"userId"`
	FullName        *string    `db:"full_name" json:"fullName,omitempty"`
	Email           *string    `db:"email" json:"email,omitempty"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	TotalSessions   int        `db:"total_sessions" json:"totalSessions"`
	LastVisit       *time.Time `db:"last_visit" json:"lastVisit,omitempty"`
	TotalSpentPaise int64      `db:"total_spent_paise" json:"totalSpentPaise"`
}

// Status is active once the customer has had at least one session.
func (c *CustomerStats) Status() string {
	if c.TotalSessions > 0 {
		return "active"
	}
	return "inactive"
}

// UserWithRole is a row of the role manager table.
type UserWithRole struct {
	ID        string    `db:"id" json:"id"`
	Email     *string   `db:"email" json:"email,omitempty"`
	FullName  *string   `db:"full_name" json:"fullName,omitempty"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
