package service

import (
	"context"

	"blogsapi/internal/entity"
	"blogsapi/internal/repository"

	"github.com/google/uuid"
)

type PostService struct {
	posts repository.PostRepository
	blogs repository.BlogRepository
	users repository.UserRepository
}

func NewPostService(posts repository.PostRepository, blogs repository.BlogRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, blogs: blogs, users: users}
}

// Create adds a post to one of the actor's active blogs.
func (s *PostService) Create(ctx context.Context, actor Actor, blogID uuid.UUID, input PostInput) (uuid.UUID, error) {
	blog, err := s.blogs.FindOwned(ctx, blogID, actor.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if blog == nil {
		return uuid.Nil, ErrBlogNotFound
	}
	post := &entity.Post{
		BlogID: blog.ID,
		Title:  input.Title,
		Body:   input.Body,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return uuid.Nil, err
	}
	return post.ID, nil
}

func (s *PostService) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Post, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.posts.ListByAuthor(ctx, userID)
}

func (s *PostService) Edit(ctx context.Context, actor Actor, id uuid.UUID, input PostInput) error {
	post, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	post.Title = input.Title
	post.Body = input.Body
	return s.posts.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.posts.SoftDelete(ctx, id)
}

func (s *PostService) owned(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Post, error) {
	post, err := s.posts.FindOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}
