package service

import "github.com/google/uuid"

type RegisterInput struct {
	Name     string
	LastName string
	Email    string
	Password string
	Nickname string
}

type EditUserInput struct {
	Name     string
	LastName string
	Email    string
	Nickname string
}

type BlogInput struct {
	Title       string
	Description string
}

type EditBlogInput struct {
	ID uuid.UUID
	BlogInput
}

type PostInput struct {
	Title string
	Body  string
}

type CommentInput struct {
	Title string
	Body  string
}
