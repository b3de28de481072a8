package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/session"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SessionID string
	User      domain.User
	Session   *session.Store
}

// AuthMiddleware validates bearer tokens and restores the caller's session.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions *session.Manager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes. A valid token whose
// session record is gone (logged out) is rejected.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	store := m.sessions.Session(claims.SessionID)
	user, ok, err := store.Restore(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(principalKey, &Principal{SessionID: claims.SessionID, User: user, Session: store})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
