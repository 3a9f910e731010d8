package service

import (
	"time"

	"blogsapi/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultRefreshWindow = 7 * 24 * time.Hour

type AuthConfig struct {
	// RefreshWindow is how long after access-token expiry the refresh token
	// is still honored.
	RefreshWindow      time.Duration
	RotateRefreshToken bool
	RefreshTokenBytes  int
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User, now time.Time) (string, time.Time, error)
}

type AuthMetrics interface {
	ObserveLogin(outcome string)
	ObserveRefresh(outcome string)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Actor is the authenticated caller on whose behalf a service call runs.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
