package domain

import (
	"strings"
	"time"
)

// Role is the single authorization attribute of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AccountStatus gates whether an account may log in.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

// ParseAccountStatus converts s into a known status.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch status := AccountStatus(s); status {
	case AccountActive, AccountInactive:
		return status, nil
	default:
		return "", Invalidf("unknown account status %q (want active or inactive)", s)
	}
}

// Account is a registered storefront user. PasswordHash never leaves the core.
type Account struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	Billing      *Billing
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the credential-free view of the account.
func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email, Username: a.Username, Role: a.Role}
}

// Identity is what a successful authentication yields.
type Identity struct {
	ID       string
	Email    string
	Username string
	Role     Role
}

// Registration carries the fields required to create an account.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Validate checks every registration field is present.
func (r Registration) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"username", r.Username},
		{"email", r.Email},
		{"password", r.Password},
		{"first name", r.FirstName},
		{"last name", r.LastName},
		{"phone", r.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return Invalidf("%s is required", f.field)
		}
	}
	return nil
}
