package dto

import "github.com/Ansan-Yabesh/BookAPI/internal/application/account"

// AccountView is the public account payload. Never carries password
// hashes or OTP material.
type AccountView struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	EmailVerified bool   `json:"email_verified"`
}

func NewAccountView(v account.View) AccountView {
	return AccountView{
		ID:            v.ID,
		Username:      v.Username,
		Email:         v.Email,
		Role:          v.Role,
		Status:        v.Status,
		EmailVerified: v.EmailVerified,
	}
}

func NewAccountViews(vs []account.View) []AccountView {
	out := make([]AccountView, 0, len(vs))
	for _, v := range vs {
		out = append(out, NewAccountView(v))
	}
	return out
}

// RegisterData is returned by register: enough to drive the OTP step.
type RegisterData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokensView is the session token payload.
type TokensView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// AuthData is returned by login.
type AuthData struct {
	Account AccountView `json:"account"`
	Tokens  TokensView  `json:"tokens"`
}

// StatusData is the generic acknowledgment payload.
type StatusData struct {
	Status string `json:"status"`
}
