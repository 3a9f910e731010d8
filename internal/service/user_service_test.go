package service

import (
	"context"
	"testing"

	"blogsapi/internal/entity"
	"blogsapi/internal/repository"
	"blogsapi/internal/testutil"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewUserService(repository.NewUserRepository(db), BcryptPasswordHasher{Cost: bcrypt.MinCost}), db
}

func TestUserService_RegisterNormalizesAndHashes(t *testing.T) {
	svc, db := newUserService(t)

	id, err := svc.Register(context.Background(), RegisterInput{
		Name:     gofakeit.FirstName(),
		LastName: gofakeit.LastName(),
		Email:    " New.User@Example.com",
		Password: "Passw0rd!",
		Nickname: "newuser",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	var stored entity.User
	require.NoError(t, db.Where("id = ?", id).First(&stored).Error)
	assert.Equal(t, "new.user@example.com", stored.Email)
	assert.Equal(t, entity.RoleUser, stored.Role)
	assert.NotEqual(t, "Passw0rd!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Passw0rd!")))
}

func TestUserService_RegisterRejectsTakenEmailAndNickname(t *testing.T) {
	svc, db := newUserService(t)
	testutil.SeedUser(t, db, testutil.SeedUserOptions{Email: "taken@example.com", Nickname: "taken"})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "TAKEN@example.com", Password: "Passw0rd!", Nickname: "fresh",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "fresh@example.com", Password: "Passw0rd!", Nickname: "taken",
	})
	require.ErrorIs(t, err, ErrNicknameTaken)
}

func TestUserService_EditKeepsOwnEmail(t *testing.T) {
	svc, db := newUserService(t)
	user := testutil.SeedUser(t, db, testutil.SeedUserOptions{Email: "me@example.com", Nickname: "me"})
	testutil.SeedUser(t, db, testutil.SeedUserOptions{Email: "other@example.com", Nickname: "other"})
	actor := Actor{ID: user.ID, Role: user.Role}

	err := svc.Edit(context.Background(), actor, EditUserInput{Name: "Renamed", Email: "me@example.com", Nickname: "me2"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "me2", got.Nickname)

	err = svc.Edit(context.Background(), actor, EditUserInput{Name: "X", Email: "other@example.com", Nickname: "me2"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, db := newUserService(t)
	user := testutil.SeedUser(t, db, testutil.SeedUserOptions{})

	require.NoError(t, svc.ChangePassword(context.Background(), Actor{ID: user.ID}, "N3wPassword"))

	var stored entity.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("N3wPassword")))
}

func TestUserService_DeleteSelfOrAdminOnly(t *testing.T) {
	svc, db := newUserService(t)
	owner := testutil.SeedUser(t, db, testutil.SeedUserOptions{})
	stranger := testutil.SeedUser(t, db, testutil.SeedUserOptions{})
	admin := testutil.SeedUser(t, db, testutil.SeedUserOptions{Role: entity.RoleAdmin})

	err := svc.Delete(context.Background(), Actor{ID: stranger.ID, Role: entity.RoleUser}, owner.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), Actor{ID: admin.ID, Role: entity.RoleAdmin}, owner.ID))
	_, err = svc.Get(context.Background(), owner.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.Delete(context.Background(), Actor{ID: stranger.ID, Role: entity.RoleUser}, stranger.ID))

	users, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)
}

func TestUserService_NicknameCannotShadowAnotherEmail(t *testing.T) {
	svc, db := newUserService(t)
	mallory := testutil.SeedUser(t, db, testutil.SeedUserOptions{Email: "mallory@example.com", Nickname: "mallory"})
	testutil.SeedUser(t, db, testutil.SeedUserOptions{Email: "bob@example.com", Nickname: "bob"})

	err := svc.Edit(context.Background(), Actor{ID: mallory.ID, Role: mallory.Role}, EditUserInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Nickname: "Bob@Example.com",
	})
	require.ErrorIs(t, err, ErrNicknameTaken)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "Passw0rd!", Nickname: "bob@example.com",
	})
	require.ErrorIs(t, err, ErrNicknameTaken)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Mal", Email: "MALLORY@example.com", Password: "Passw0rd!", Nickname: "mal",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_EmailCannotMatchAnotherNickname(t *testing.T) {
	svc, db := newUserService(t)
	testutil.SeedUser(t, db, testutil.SeedUserOptions{Email: "frank@example.com", Nickname: "grace@example.com"})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "Passw0rd!", Nickname: "grace",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}
