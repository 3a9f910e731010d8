package handler

import (
	"net/http"

	"blogsapi/internal/dto"
	"blogsapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	opLogin        = "Login"
	opRefreshToken = "RefreshToken"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, opLogin)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, opLogin, err)
	}
	input := service.LoginInput{
		Identifier: req.User,
		Password:   req.Password,
		IPAddress:  stringPtr(c.RealIP()),
	}
	pair, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, opLogin, err)
	}
	return c.JSON(http.StatusOK, mapTokenResponse(pair))
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, opRefreshToken)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, opRefreshToken, err)
	}
	pair, err := h.Service.Refresh(c.Request().Context(), req.RefreshToken, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, opRefreshToken, err)
	}
	return c.JSON(http.StatusOK, mapTokenResponse(pair))
}

func mapTokenResponse(pair *service.TokenPair) dto.TokenResponse {
	if pair == nil {
		return dto.TokenResponse{}
	}
	return dto.TokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Expiration:   pair.ExpiresAt,
	}
}
