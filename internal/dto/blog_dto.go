package dto

import (
	"time"

	"blogsapi/internal/entity"
)

type BlogRequest struct {
	Title       string `json:"title" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=500"`
}

type EditBlogRequest struct {
	ID string `json:"id" validate:"required,uuid"`
	BlogRequest
}

type BlogAuthor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Nickname string `json:"nickname"`
}

type BlogResponse struct {
	ID           string      `json:"id"`
	Author       *BlogAuthor `json:"author,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CreationDate time.Time   `json:"creationDate"`
	PostQuantity int         `json:"postQuantity"`
}

type BlogListResponse struct {
	Blogs []BlogResponse `json:"blogs"`
}

func BlogResponseFromEntity(blog *entity.Blog) BlogResponse {
	response := BlogResponse{
		ID:           blog.ID.String(),
		Title:        blog.Title,
		Description:  blog.Description,
		CreationDate: blog.CreatedAt,
		PostQuantity: len(blog.Posts),
	}
	if blog.Author != nil {
		response.Author = &BlogAuthor{
			ID:       blog.Author.ID.String(),
			Name:     blog.Author.Name,
			LastName: blog.Author.LastName,
			Nickname: blog.Author.Nickname,
		}
	}
	return response
}

func BlogListFromEntities(blogs []entity.Blog) BlogListResponse {
	responses := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		responses = append(responses, BlogResponseFromEntity(&blogs[i]))
	}
	return BlogListResponse{Blogs: responses}
}
