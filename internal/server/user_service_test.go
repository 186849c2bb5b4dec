package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// fakeAccountStore is an in-memory AccountStore.
type fakeAccountStore struct {
	users map[uuid.UUID]*db.User
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{users: make(map[uuid.UUID]*db.User)}
}

func (s *fakeAccountStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	for _, u := range s.users {
		if u.Email == email {
			return uuid.Nil, &db.DuplicateEmailError{Email: email}
		}
	}
	id := uuid.New()
	now := time.Now()
	s.users[id] = &db.User{
		ID: id, Name: name, Email: email, PasswordHash: passwordHash,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (s *fakeAccountStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeAccountStore) GetUserByID(_ context.Context, id uuid.UUID) (*db.User, error) {
	return s.users[id], nil
}

func (s *fakeAccountStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(s.users, id)
	return nil
}

func testPasswordConfig() *config.PasswordConfig {
	// MinCost keeps the hashing fast in tests.
	return &config.PasswordConfig{BcryptCost: bcrypt.MinCost}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	service := NewUserService(newFakeAccountStore(), testPasswordConfig())
	ctx := context.Background()

	user, err := service.Register(ctx, &types.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)

	loggedIn, err := service.Login(ctx, &types.LoginRequest{
		Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	service := NewUserService(newFakeAccountStore(), testPasswordConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, &types.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, &types.CreateUserRequest{
		Name: "Imposter", Email: "ada@example.com", Password: "other-password",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	service := NewUserService(newFakeAccountStore(), testPasswordConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, &types.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, &types.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	service := NewUserService(newFakeAccountStore(), testPasswordConfig())

	_, err := service.Login(context.Background(), &types.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	require.Error(t, err)
	// Same generic error as a wrong password, no account enumeration.
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_GetUserNotFound(t *testing.T) {
	service := NewUserService(newFakeAccountStore(), testPasswordConfig())

	_, err := service.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.IsType(t, &ErrUserNotFound{}, err)
}

func TestUserService_PasswordHashNeverReturned(t *testing.T) {
	store := newFakeAccountStore()
	service := NewUserService(store, testPasswordConfig())

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
}
