package service

import (
	"context"

	"blogsapi/internal/entity"
	"blogsapi/internal/repository"

	"github.com/google/uuid"
)

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, actor Actor, postID uuid.UUID, input CommentInput) (uuid.UUID, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return uuid.Nil, err
	}
	if post == nil {
		return uuid.Nil, ErrPostNotFound
	}
	comment := &entity.Comment{
		PostID:   post.ID,
		AuthorID: actor.ID,
		Title:    input.Title,
		Body:     input.Body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return uuid.Nil, err
	}
	return comment.ID, nil
}
