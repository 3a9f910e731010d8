// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"blogsapi/config"
	"blogsapi/internal/entity"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(context.Background(), db))
	return db
}

type SeedUserOptions struct {
	Email    string
	Nickname string
	Password string
	Role     string
}

// SeedUser inserts an active user. Empty options are filled with fake data;
// the password defaults to "Passw0rd!".
func SeedUser(t testing.TB, db *gorm.DB, opts SeedUserOptions) *entity.User {
	t.Helper()

	if opts.Email == "" {
		opts.Email = strings.ToLower(gofakeit.Email())
	}
	if opts.Nickname == "" {
		opts.Nickname = gofakeit.Username() + gofakeit.DigitN(4)
	}
	if opts.Password == "" {
		opts.Password = "Passw0rd!"
	}
	if opts.Role == "" {
		opts.Role = entity.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Name:         gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Email:        opts.Email,
		Nickname:     opts.Nickname,
		PasswordHash: string(hash),
		Role:         opts.Role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
