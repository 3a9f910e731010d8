package service

import (
	"context"
	"strings"

	"blogsapi/internal/entity"
	"blogsapi/internal/repository"
	"blogsapi/internal/utils"

	"github.com/google/uuid"
)

type UserService struct {
	users        repository.UserRepository
	passwordHash PasswordHasher
}

func NewUserService(users repository.UserRepository, passwordHash PasswordHasher) *UserService {
	return &UserService{users: users, passwordHash: passwordHash}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (uuid.UUID, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" || strings.TrimSpace(input.Nickname) == "" {
		return uuid.Nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	nickname := strings.TrimSpace(input.Nickname)
	if err := s.ensureAvailable(ctx, email, nickname, uuid.Nil); err != nil {
		return uuid.Nil, err
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return uuid.Nil, err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByIDWithBlogs(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Edit(ctx context.Context, actor Actor, input EditUserInput) error {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	email := utils.NormalizeEmail(input.Email)
	nickname := strings.TrimSpace(input.Nickname)
	if err := s.ensureAvailable(ctx, email, nickname, user.ID); err != nil {
		return err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = email
	user.Nickname = nickname
	return s.users.Update(ctx, user)
}

func (s *UserService) ChangePassword(ctx context.Context, actor Actor, password string) error {
	if password == "" {
		return ErrInvalidInput
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hash, err := s.passwordHash.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// Delete soft-deletes a user. Users may delete themselves; admins may
// delete anyone.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.ID != id && !actor.IsAdmin() {
		return ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.SoftDelete(ctx, id)
}

func (s *UserService) ensureAvailable(ctx context.Context, email, nickname string, except uuid.UUID) error {
	taken, err := s.users.EmailTaken(ctx, email, except)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	taken, err = s.users.NicknameTaken(ctx, nickname, except)
	if err != nil {
		return err
	}
	if taken {
		return ErrNicknameTaken
	}
	return nil
}
