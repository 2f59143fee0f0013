package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthhabits/habit-tracker/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware. Its absence
// means the route was wired without authentication, which is treated as an
// unauthenticated request.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextKeyUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return userID, nil
}
