package service

import (
	"context"

	"blogsapi/internal/entity"
	"blogsapi/internal/repository"

	"github.com/google/uuid"
)

type BlogService struct {
	blogs repository.BlogRepository
	users repository.UserRepository
}

func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

func (s *BlogService) Create(ctx context.Context, actor Actor, input BlogInput) (uuid.UUID, error) {
	blog := &entity.Blog{
		AuthorID:    actor.ID,
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return uuid.Nil, err
	}
	return blog.ID, nil
}

func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

func (s *BlogService) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Blog, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.blogs.ListByAuthor(ctx, userID)
}

func (s *BlogService) Edit(ctx context.Context, actor Actor, input EditBlogInput) error {
	blog, err := s.owned(ctx, actor, input.ID)
	if err != nil {
		return err
	}
	blog.Title = input.Title
	blog.Description = input.Description
	return s.blogs.Update(ctx, blog)
}

func (s *BlogService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.blogs.SoftDelete(ctx, id)
}

// Reactivate restores a soft-deleted blog owned by the actor.
func (s *BlogService) Reactivate(ctx context.Context, actor Actor, id uuid.UUID) error {
	blog, err := s.blogs.FindDeletedOwned(ctx, id, actor.ID)
	if err != nil {
		return err
	}
	if blog == nil {
		return ErrBlogNotFound
	}
	return s.blogs.Restore(ctx, id)
}

func (s *BlogService) owned(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Blog, error) {
	blog, err := s.blogs.FindOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}
