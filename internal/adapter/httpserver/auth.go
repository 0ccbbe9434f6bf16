package httpserver

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// newOperatorAuth guards operator routes with a bearer token compared in constant time.
// Missing and wrong tokens both get 401.
func newOperatorAuth(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			slog.WarnContext(c.Request().Context(), "Operator request rejected",
				"client_ip", c.RealIP(), "method", c.Request().Method, "path", c.Path(), "reason", err)
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "unauthorized",
				"type":  "unauthorized",
			})
		},
	})
}
