package services

import (
	"context"
	"testing"

	"github.com/dmavani25/teammatch-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndAssignsRole(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)

	user, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleOrganizer, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())

	_, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)

	input := RegisterInput{FirstName: "Ada", Email: "ada@example.com", Password: "correct horse battery"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)

	user, err := service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "correct horse battery"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "login response must not leak the hash")

	_, err = service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = service.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
