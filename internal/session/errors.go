package session

import (
	"net/http"

	"github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

var (
	// ErrInvalidCredentials is returned when no account matches a login.
	ErrInvalidCredentials = errorutil.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized, nil)
	// ErrEmailInUse is returned when registering an email already in the directory.
	ErrEmailInUse = errorutil.NewDomainError("EMAIL_IN_USE", "Email already in use", http.StatusConflict, nil)
)
