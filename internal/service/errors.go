package service

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("the user or password is incorrect")
	ErrSessionNotFound     = errors.New("the refresh token does not exist")
	ErrSessionExpired      = errors.New("the session has expired, please log in again")
	ErrRefreshTokenRotated = errors.New("the refresh token has already been used")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("this email is already registered")
	ErrNicknameTaken       = errors.New("this nickname is already registered")
	ErrBlogNotFound        = errors.New("blog not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrForbidden           = errors.New("forbidden")
)
