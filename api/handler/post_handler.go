package handler

import (
	"net/http"

	"blogsapi/internal/dto"
	"blogsapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	Posts    *service.PostService
	Comments *service.CommentService
	Validate *validator.Validate
}

func NewPostHandler(posts *service.PostService, comments *service.CommentService, validate *validator.Validate) *PostHandler {
	return &PostHandler{Posts: posts, Comments: comments, Validate: validate}
}

// Create adds a post to the blog named by the :id path parameter.
func (h *PostHandler) Create(c echo.Context) error {
	const op = "CreatePost"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	blogID, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid blog id")
	}
	var req dto.PostRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	id, err := h.Posts.Create(c.Request().Context(), actor, blogID, service.PostInput{Title: req.Title, Body: req.Body})
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: id.String()})
}

func (h *PostHandler) ListByUser(c echo.Context) error {
	const op = "GetUserPosts"
	userID, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid user id")
	}
	posts, err := h.Posts.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.PostListFromEntities(posts))
}

func (h *PostHandler) Edit(c echo.Context) error {
	const op = "EditPost"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid post id")
	}
	var req dto.PostRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	if err := h.Posts.Edit(c.Request().Context(), actor, id, service.PostInput{Title: req.Title, Body: req.Body}); err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: id.String()})
}

func (h *PostHandler) Delete(c echo.Context) error {
	const op = "DeletePost"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	id, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid post id")
	}
	if err := h.Posts.Delete(c.Request().Context(), actor, id); err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.EmptyResponse{})
}

func (h *PostHandler) Comment(c echo.Context) error {
	const op = "CreateComment"
	actor, err := currentActor(c)
	if err != nil {
		return writeUnauthenticated(c)
	}
	postID, ok := parseID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, op+".Request", "invalid post id")
	}
	var req dto.CommentRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeBadRequest(c, op)
	}
	if err := validateRequest(h.Validate, req); err != nil {
		return writeValidationError(c, op, err)
	}
	id, err := h.Comments.Create(c.Request().Context(), actor, postID, service.CommentInput{Title: req.Title, Body: req.Body})
	if err != nil {
		return writeServiceError(c, op, err)
	}
	return c.JSON(http.StatusOK, dto.IDResponse{ID: id.String()})
}
