package service

import (
	"context"
	"time"

	"github.com/spec-kit/shift-swap-service/internal/auth"
	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/session"
)

// AuthResult is a signed-in user plus the bearer token bound to its session.
type AuthResult struct {
	User      domain.User
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	sessions *session.Manager
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, sessions *session.Manager) *AuthService {
	return &AuthService{
		sessions: sessions,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// Login signs in an existing account under a new client session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	sid := s.sessions.NewSessionID()
	user, err := s.sessions.Session(sid).Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(sid, user)
}

// Register creates an employee account and signs it in under a new client session.
func (s *AuthService) Register(ctx context.Context, in session.RegisterInput) (*AuthResult, error) {
	sid := s.sessions.NewSessionID()
	user, err := s.sessions.Session(sid).Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(sid, user)
}

// Logout clears the session record; tokens bound to it stop working.
func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	return store.Logout(ctx)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(sid string, user domain.User) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(sid, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, SessionID: sid, Token: token, ExpiresAt: exp}, nil
}
