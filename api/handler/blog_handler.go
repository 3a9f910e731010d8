package handler

import (
	"net/http"

	"blogsapi/internal/dto"
	"blogsapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BlogHandler struct {
	Service  *service.BlogService
	Validate *validator.Validate
}

func NewBlogHandler(svc *service.BlogService, validate *validator.Validate) *BlogHandler {
	return &BlogHandler{Service: svc, Validate: validate}
}

func (h *BlogHandler) Create(c echo.Context) error {
	const op = "CreateBlog"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	var req dto.BlogRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	id, err := h.Service.Create(c.Request().Context(), actor, service.BlogInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: id.String()})
}

func (h *BlogHandler) Get(c echo.Context) error {
	const op = "GetBlog"
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid blog id")
	}
	blog, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.BlogResponseFromEntity(blog))
}

func (h *BlogHandler) ListByUser(c echo.Context) error {
	const op = "GetUserBlogs"
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid user id")
	}
	blogs, err := h.Service.ListByUser(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.BlogListFromEntities(blogs))
}

func (h *BlogHandler) Edit(c echo.Context) error {
	const op = "EditBlog"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	var req dto.EditBlogRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return writeValidationProblem(c, map[string][]string{"id": {"'id' is not a valid identifier."}})
	}
	err = h.Service.Edit(c.Request().Context(), actor, service.EditBlogInput{
		ID: id,
		BlogInput: service.BlogInput{
			Title:       req.Title,
			Description: req.Description,
		},
	})
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: id.String()})
}

func (h *BlogHandler) Delete(c echo.Context) error {
	const op = "DeleteBlog"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid blog id")
	}
	if err := h.Service.Delete(c.Request().Context(), actor, id); err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.EmptyResponse{})
}

func (h *BlogHandler) Reactivate(c echo.Context) error {
	const op = "ReactivateBlog"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid blog id")
	}
	if err := h.Service.Reactivate(c.Request().Context(), actor, id); err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.EmptyResponse{})
}
