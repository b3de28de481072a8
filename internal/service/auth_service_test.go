package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/persistence"
	"github.com/spec-kit/shift-swap-service/internal/session"
)

func newAuthService(t *testing.T) (*AuthService, *session.Manager) {
	t.Helper()
	dir := session.NewDirectory([]domain.User{
		{ID: "2", Name: "Sarah Manager", Email: "manager@dominos.com", EmployeeID: "MGR001", Role: domain.UserRoleManager, StoreID: "store1"},
	})
	mgr := session.NewManager(dir, persistence.NewMemoryStorage(), "dominos_user", session.Options{})
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5}}
	return NewAuthService(cfg, mgr), mgr
}

func TestAuthService_LoginIssuesSessionToken(t *testing.T) {
	svc, mgr := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "manager@dominos.com", "x")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "2", res.User.ID)

	claims, err := svc.TokenManager().ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, claims.SessionID)
	assert.Equal(t, domain.UserRoleManager, claims.Role)

	user, ok, err := mgr.Session(res.SessionID).Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", user.ID)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Login(context.Background(), "who@dominos.com", "x")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestAuthService_RegisterThenLogout(t *testing.T) {
	svc, mgr := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, session.RegisterInput{Name: "New", Email: "new@dominos.com", EmployeeID: "EMP9", StoreID: "store1"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleEmployee, res.User.Role)

	store := mgr.Session(res.SessionID)
	require.NoError(t, svc.Logout(ctx, store))
	_, ok, err := mgr.Session(res.SessionID).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Register(ctx, session.RegisterInput{Name: "Again", Email: "new@dominos.com"})
	assert.ErrorIs(t, err, session.ErrEmailInUse)
}
