package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeblaze/portal/internal/core/domain"
)

var domainStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrJobNotFound, http.StatusNotFound},
	{domain.ErrInvalidJob, http.StatusBadRequest},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrUserExists, http.StatusConflict},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrEmailNotVerified, http.StatusForbidden},
	{domain.ErrAlreadyVerified, http.StatusConflict},
	{domain.ErrPasswordMismatch, http.StatusBadRequest},
	{domain.ErrWeakPassword, http.StatusBadRequest},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrCodeNotFound, http.StatusGone},
	{domain.ErrInvalidOTP, http.StatusBadRequest},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	{domain.ErrInvalidTransition, http.StatusConflict},
}

// ErrorStatus maps a known domain error to its HTTP status and public message.
func ErrorStatus(err error) (int, string, bool) {
	for _, ds := range domainStatuses {
		if errors.Is(err, ds.err) {
			return ds.status, ds.err.Error(), true
		}
	}
	return 0, "", false
}

// respondError renders known domain errors; anything else goes to the
// central error handler.
func respondError(c echo.Context, err error) error {
	if status, msg, ok := ErrorStatus(err); ok {
		return c.JSON(status, errorResponse{Error: msg})
	}
	return err
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
