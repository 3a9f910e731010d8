package service

import "time"

type LoginInput struct {
	// Identifier is either the email or the nickname.
	Identifier string
	Password   string
	IPAddress  *string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

const (
	outcomeSuccess            = "success"
	outcomeInvalidCredentials = "invalid_credentials"
	outcomeNotFound           = "not_found"
	outcomeExpired            = "expired"
	outcomeRotated            = "rotated"
	outcomeError              = "error"
)
