// Package users holds the dev server's accounts: registration, password
// login, token refresh and the admin flag.
package users

import (
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

type User struct {
	ID                 string
	Email              string
	FullName           string
	PasswordHash       string
	IsAdmin            bool
	SubscriptionStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Public is the record returned by the API; the hash never leaves the
// package.
func (u *User) Public() models.User {
	return models.User{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		IsAdmin:            u.IsAdmin,
		SubscriptionStatus: u.SubscriptionStatus,
		CreatedAt:          u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
