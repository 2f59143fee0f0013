package middleware

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitPerUser limits each authenticated user to perMinute requests with a
// burst of the same size, rounded up. It must run after Auth. A non-positive
// perMinute disables limiting.
func RateLimitPerUser(perMinute float64) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perMinute / 60),
		Burst:     int(math.Ceil(perMinute)),
		ExpiresIn: 3 * time.Minute,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			userID, _ := c.Get(ContextKeyUserID).(string)
			if userID == "" {
				return "", unauthorized()
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
