package dto

import (
	"time"

	"blogsapi/internal/entity"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	LastName string `json:"lastName" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Nickname string `json:"nickname" validate:"required,max=100"`
}

type EditUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	LastName string `json:"lastName" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Nickname string `json:"nickname" validate:"required,max=100"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,password"`
}

type UserSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Nickname      string `json:"nickname"`
	BlogsQuantity int    `json:"blogsQuantity"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
}

type UserBlog struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreationDate time.Time `json:"creationDate"`
}

type UserDetailResponse struct {
	UserSummary
	Blogs []UserBlog `json:"blogs"`
}

func UserSummaryFromEntity(user *entity.User) UserSummary {
	return UserSummary{
		ID:            user.ID.String(),
		Name:          user.Name,
		LastName:      user.LastName,
		Email:         user.Email,
		Nickname:      user.Nickname,
		BlogsQuantity: len(user.Blogs),
	}
}

func UserListFromEntities(users []entity.User) UserListResponse {
	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, UserSummaryFromEntity(&users[i]))
	}
	return UserListResponse{Users: summaries}
}

func UserDetailFromEntity(user *entity.User) UserDetailResponse {
	blogs := make([]UserBlog, 0, len(user.Blogs))
	for _, blog := range user.Blogs {
		blogs = append(blogs, UserBlog{
			ID:           blog.ID.String(),
			Title:        blog.Title,
			CreationDate: blog.CreatedAt,
		})
	}
	return UserDetailResponse{
		UserSummary: UserSummaryFromEntity(user),
		Blogs:       blogs,
	}
}
