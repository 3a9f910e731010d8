package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"blogsapi/api/middleware"
	"blogsapi/internal/dto"
	"blogsapi/internal/service"
	"blogsapi/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	validationProblemType  = "https://tools.ietf.org/html/rfc9110#section-15.5.21"
	validationProblemTitle = "One or more validation errors occurred."
)

type serviceError struct {
	sentinel error
	status   int
	// field is set for errors rendered as a validation problem.
	field string
}

// serviceErrors is matched in order; the first sentinel found in the chain
// decides the response.
var serviceErrors = []serviceError{
	{sentinel: service.ErrInvalidInput, status: http.StatusBadRequest},
	{sentinel: service.ErrInvalidCredentials, status: http.StatusBadRequest},
	{sentinel: service.ErrSessionExpired, status: http.StatusNotFound},
	{sentinel: service.ErrRefreshTokenRotated, status: http.StatusBadRequest},
	{sentinel: service.ErrSessionNotFound, status: http.StatusBadRequest},
	{sentinel: service.ErrForbidden, status: http.StatusForbidden},
	{sentinel: service.ErrEmailTaken, status: http.StatusUnprocessableEntity, field: "email"},
	{sentinel: service.ErrNicknameTaken, status: http.StatusUnprocessableEntity, field: "nickname"},
	{sentinel: service.ErrUserNotFound, status: http.StatusNotFound},
	{sentinel: service.ErrBlogNotFound, status: http.StatusNotFound},
	{sentinel: service.ErrPostNotFound, status: http.StatusNotFound},
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func validateRequest(validate *validator.Validate, payload any) error {
	if validate == nil {
		return nil
	}
	return validate.Struct(payload)
}

func writeError(c echo.Context, status int, code string, message string) error {
	return c.JSON(status, dto.ErrorResponse{Code: code, Message: message})
}

func writeBadRequest(c echo.Context, operation string) error {
	return writeError(c, http.StatusBadRequest, operation+".Request", "the request body is not valid")
}

func writeValidationProblem(c echo.Context, errs map[string][]string) error {
	return c.JSON(http.StatusUnprocessableEntity, dto.ValidationProblem{
		Type:   validationProblemType,
		Title:  validationProblemTitle,
		Status: http.StatusUnprocessableEntity,
		Errors: errs,
	})
}

func writeValidationError(c echo.Context, operation string, err error) error {
	messages := utils.ValidationMessages(err)
	if messages == nil {
		return writeBadRequest(c, operation)
	}
	return writeValidationProblem(c, messages)
}

// writeServiceError renders a service failure as {code, message}. Unknown
// errors are returned to echo so the request logger records them.
func writeServiceError(c echo.Context, operation string, err error) error {
	for _, mapped := range serviceErrors {
		if !errors.Is(err, mapped.sentinel) {
			continue
		}
		if mapped.field != "" {
			return writeValidationProblem(c, map[string][]string{mapped.field: {mapped.sentinel.Error()}})
		}
		return writeError(c, mapped.status, operation+".Handle", mapped.sentinel.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    operation + ".Handle",
		Message: "an unexpected error occurred",
	}).SetInternal(err)
}

func currentActor(c echo.Context) (service.Actor, error) {
	principal, err := middleware.CurrentUser(c)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{ID: principal.ID, Role: principal.Role}, nil
}

func writeUnauthenticated(c echo.Context) error {
	return writeError(c, http.StatusUnauthorized, "Auth.Unauthorized", "a valid bearer token is required")
}

func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
