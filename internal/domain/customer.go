package domain

import "time"

// Customer represents a registered shopper. Customers created implicitly at
// checkout carry a placeholder credential until the authentication flow
// overwrites it.
type Customer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
