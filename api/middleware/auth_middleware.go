package middleware

import (
	"net/http"
	"strings"

	"blogsapi/internal/dto"
	"blogsapi/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	JWT *utils.JWTManager
}

// Require authenticates the bearer token and then checks policy against the
// role claim.
func (m AuthMiddleware) Require(policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.RequireAuth(func(c echo.Context) error {
			principal, err := CurrentUser(c)
			if err != nil {
				return unauthorized(c)
			}
			if !policy.Allows(principal.Role) {
				return c.JSON(http.StatusForbidden, dto.ErrorResponse{
					Code:    "Auth.Forbidden",
					Message: "you are not allowed to perform this action",
				})
			}
			return next(c)
		})
	}
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return unauthorized(c)
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return unauthorized(c)
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return unauthorized(c)
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return unauthorized(c)
		}
		SetPrincipal(c, Principal{ID: userID, Email: claims.Email, Role: claims.Roles})
		return next(c)
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    "Auth.Unauthorized",
		Message: "a valid bearer token is required",
	})
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
