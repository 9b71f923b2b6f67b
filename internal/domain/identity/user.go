package identity

import (
	"fmt"
	"strings"

	"github.com/autoparts/backend/internal/domain/shared"
)

// Role is the closed set of account roles. Raw strings are parsed exactly
// once at the trust boundary; everything past it works with the typed value.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// ParseRole validates a raw role string
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown role %q", s))
	}
	return role, nil
}

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleStaff || r == RoleAdmin
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanManageCatalog reports whether the role may mutate products
func (r Role) CanManageCatalog() bool {
	return r == RoleStaff || r == RoleAdmin
}

// IsAdmin reports whether the role has full administrative access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is the identity aggregate root
type User struct {
	shared.BaseEntity
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null;default:buyer"`
}

// NewUser creates a user account. The password must already be hashed.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A valid email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown role %q", role))
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// ChangeRole assigns a new role to the user
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown role %q", role))
	}
	u.Role = role
	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	return nil
}
