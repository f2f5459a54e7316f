// Package models defines the core data types shared by the catalog, the
// identity session, the overlay store and the snapshot gateway.
package models

import "time"

// Role controls access to administrative operations.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdministrator
}

// Identity is one registered account. IDs are sequential and never reused,
// even after deletions.
type Identity struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdministrator reports whether the identity may perform administrative
// operations.
func (i *Identity) IsAdministrator() bool {
	return i != nil && i.Role == RoleAdministrator
}

// Credential holds the secret verifier for one email. Its lifecycle is tied
// 1:1 to the identity owning that email: created at registration, rekeyed
// when the email changes, removed when the account is deleted.
type Credential struct {
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}
