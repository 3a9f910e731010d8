package handler

import (
	"net/http"

	"blogsapi/internal/dto"
	"blogsapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service  *service.UserService
	Validate *validator.Validate
}

func NewUserHandler(svc *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{Service: svc, Validate: validate}
}

func (h *UserHandler) Register(c echo.Context) error {
	const op = "CreateUser"
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	id, err := h.Service.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: id.String()})
}

func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, err := h.Service.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, "GetUsers", err)
	}
	return c.JSON(http.StatusOK, dto.UserListFromEntities(users))
}

func (h *UserHandler) Get(c echo.Context) error {
	const op = "GetUser"
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid user id")
	}
	user, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.UserDetailFromEntity(user))
}

func (h *UserHandler) Edit(c echo.Context) error {
	const op = "EditUser"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	var req dto.EditUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	err = h.Service.Edit(c.Request().Context(), actor, service.EditUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Nickname: req.Nickname,
	})
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: actor.ID.String()})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	const op = "EditPassword"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	var req dto.ChangePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	if err := h.Service.ChangePassword(c.Request().Context(), actor, req.Password); err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.EmptyResponse{})
}

func (h *UserHandler) Delete(c echo.Context) error {
	const op = "DeleteUser"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid user id")
	}
	if err := h.Service.Delete(c.Request().Context(), actor, id); err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.EmptyResponse{})
}
