package dto

import (
	"time"

	"blogsapi/internal/entity"
)

type PostRequest struct {
	Title string `json:"title" validate:"required,max=50"`
	Body  string `json:"body" validate:"required"`
}

type CommentRequest struct {
	Title string `json:"title" validate:"required,max=50"`
	Body  string `json:"body" validate:"required"`
}

type PostResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CreationDate time.Time `json:"creationDate"`
	BlogID       string    `json:"blogId"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

func PostListFromEntities(posts []entity.Post) PostListResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, PostResponse{
			ID:           post.ID.String(),
			Title:        post.Title,
			Body:         post.Body,
			CreationDate: post.CreatedAt,
			BlogID:       post.BlogID.String(),
		})
	}
	return PostListResponse{Posts: responses}
}
