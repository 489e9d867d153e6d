package middleware

import (
	"net/http"
	"github.com/labstack/echo/v4"
)

// StationAuth is an optional middleware. When enabled=true, it requires a
// field-station identifier from headers/cookies set by the station gateway.
// If it cannot find one, it returns 401. When enabled=false, it simply
// passes through (use DevLogin instead).
func StationAuth(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c) // bypass in development
			}
			sid := c.Request().Header.Get("X-Station-Id")
			if sid == "" {
				if ck, err := c.Cookie("STATION_ID"); err == nil { sid = ck.Value }
			}
			if sid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error":"station auth required: missing station id"})
			}
			c.Set("station", sid)
			return next(c)
		}
	}
}
