package middleware

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const contextPrincipalKey = "auth_principal"

var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the identity decoded from a valid bearer token.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func SetPrincipal(c echo.Context, principal Principal) {
	c.Set(contextPrincipalKey, principal)
}

func CurrentUser(c echo.Context) (Principal, error) {
	principal, ok := c.Get(contextPrincipalKey).(Principal)
	if !ok || principal.ID == uuid.Nil {
		return Principal{}, ErrUnauthenticated
	}
	return principal, nil
}
