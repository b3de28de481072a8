package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/api/dto"
	"github.com/spec-kit/shift-swap-service/internal/service"
	"github.com/spec-kit/shift-swap-service/internal/session"
)

// UsersHandler exposes the session endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Register(c.UserContext(), session.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
		StoreID:    req.StoreID,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, sessionResponse(result))
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, sessionResponse(result))
}

// Logout handles POST /auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), p.Session); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, p.User)
}

func sessionResponse(r *service.AuthResult) dto.SessionResponse {
	return dto.SessionResponse{
		User: r.User,
		Auth: dto.AuthResponse{Token: r.Token, ExpiresAt: r.ExpiresAt},
	}
}
