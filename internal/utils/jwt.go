package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const defaultRole = "User"

type JWTManager struct {
	Secret         []byte
	Issuer         string
	Audience       string
	AccessTokenTTL time.Duration
	// TimeFunc overrides the clock used to validate exp/nbf. Nil means time.Now.
	TimeFunc func() time.Time
}

type AccessClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Roles  string `json:"roles"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs an HS256 token for the subject. The returned
// expiration is exactly the token's exp claim.
func (m JWTManager) IssueAccessToken(userID string, email string, role string, now time.Time) (string, time.Time, error) {
	ttl := m.AccessTokenTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if role == "" {
		role = defaultRole
	}
	issuedAt := now.Truncate(jwt.TimePrecision)
	expiresAt := now.Add(ttl).Truncate(jwt.TimePrecision)
	claims := AccessClaims{
		UserID: userID,
		Email:  email,
		Roles:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{m.Audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m JWTManager) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.Issuer),
		jwt.WithAudience(m.Audience),
		jwt.WithExpirationRequired(),
	}
	if m.TimeFunc != nil {
		options = append(options, jwt.WithTimeFunc(m.TimeFunc))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	}, options...)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Email == "" || claims.Roles == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
