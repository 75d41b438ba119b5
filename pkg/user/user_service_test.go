package user

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/internal/testutil"
	"Recipe-Catalog/pkg/jwt"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterLoginMe(t *testing.T) {
	db := testutil.NewTestDB(t)
	jwtService := jwt.NewJWTService("secret")
	svc := NewUserService(NewUserRepository(db), jwtService)
	ctx := context.Background()

	first := "Ada"
	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Email:     "Ada@Example.com",
		Password:  "correct horse",
		FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", registered.Email)
	assert.True(t, registered.IsActive)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "ada@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", login.TokenType)

	userID, err := jwtService.GetUserIDByToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	me, err := svc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", *me.FirstName)
	assert.Nil(t, me.LastName)

	_, err = svc.Me(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
