// Package models holds the records exchanged with the interview-prep backend
// and the checks the console runs before submitting them.
package models

// User is a backend account. The record returned by /users/me is the
// console's Identity.
type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	IsAdmin            bool   `json:"is_admin"`
	SubscriptionStatus string `json:"subscription_status,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	FullName           *string `json:"full_name,omitempty"`
	IsAdmin            *bool   `json:"is_admin,omitempty"`
	SubscriptionStatus *string `json:"subscription_status,omitempty"`
}

// AuthResponse is returned by the login and refresh endpoints.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}
