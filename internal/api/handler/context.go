package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID returns the subject injected by the Auth middleware. A missing
// subject means the route was mounted without the middleware.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
