package dto

import "time"

// LoginRequest accepts either an email or a nickname in User.
type LoginRequest struct {
	User     string `json:"user" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,notblank"`
}

type TokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type EmptyResponse struct{}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationProblem is the body of every 422 response.
type ValidationProblem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}
