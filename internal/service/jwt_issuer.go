package service

import (
	"time"

	"blogsapi/internal/entity"
	"blogsapi/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User, now time.Time) (string, time.Time, error) {
	if j.Manager == nil {
		return "", time.Time{}, utils.ErrInvalidToken
	}
	return j.Manager.IssueAccessToken(user.ID.String(), user.Email, user.Role, now)
}
