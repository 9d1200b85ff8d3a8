package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

// fakeUserRepository keeps users in memory and enforces the unique
// username constraint the way the real storage layer does.
type fakeUserRepository struct {
	nextID uint
	users  map[string]domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		nextID: 1,
		users:  make(map[string]domain.User),
	}
}

func (f *fakeUserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.Username]; ok {
		return domain.User{}, repository.ErrUsernameExists
	}

	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user

	return user, nil
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_Signup(t *testing.T) {
	newUser := func() domain.User {
		return domain.User{
			FirstName: "Alice",
			LastName:  "Smith",
			Username:  "alice",
			Password:  "secretpw1",
			Age:       30,
		}
	}

	t.Run("creates the user and hashes the password", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())

		created, err := svc.Signup(context.Background(), newUser())

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "alice", created.Username)
		assert.NotEqual(t, "secretpw1", created.Password)
	})

	t.Run("rejects a blank username", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())

		user := newUser()
		user.Username = "   "
		_, err := svc.Signup(context.Background(), user)

		assert.ErrorIs(t, err, ErrBlankUsername)
	})

	t.Run("rejects a blank password", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())

		user := newUser()
		user.Password = ""
		_, err := svc.Signup(context.Background(), user)

		assert.ErrorIs(t, err, ErrBlankPassword)
	})

	t.Run("rejects an underage user", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())

		user := newUser()
		user.Age = 17
		_, err := svc.Signup(context.Background(), user)

		assert.ErrorIs(t, err, ErrUnderage)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())

		_, err := svc.Signup(context.Background(), newUser())
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), newUser())
		assert.ErrorIs(t, err, ErrUsernameExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	signup := func(t *testing.T, svc *AuthService) domain.User {
		t.Helper()

		created, err := svc.Signup(context.Background(), domain.User{
			FirstName: "Bob",
			LastName:  "Jones",
			Username:  "bob",
			Password:  "hunter22",
			Age:       25,
		})
		require.NoError(t, err)

		return created
	}

	t.Run("returns the user on correct credentials", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())
		created := signup(t, svc)

		user, err := svc.Login(context.Background(), "bob", "hunter22")

		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())
		signup(t, svc)

		_, err := svc.Login(context.Background(), "bob", "wrong")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rejects an unknown username", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepository())

		_, err := svc.Login(context.Background(), "nobody", "hunter22")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
