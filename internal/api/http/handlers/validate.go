package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/auth"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

var validate = validator.New()

// bind decodes the request body into dst and checks its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		details := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[lowerFirst(fe.Field())] = fe.Tag()
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("sign in required")
	}
	return p, nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
