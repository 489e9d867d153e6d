package middleware

import (
	"net/http"
	"github.com/labstack/echo/v4"
)

func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie("STATION_ID"); err == nil { sid = ck.Value }
			if sid == "" {
				if q := c.QueryParam("station"); q != "" {
					c.SetCookie(&http.Cookie{Name:"STATION_ID", Value:q, Path:"/"}); sid = q
				} else {
					sid = "STATION_DEV_DEFAULT"
					c.SetCookie(&http.Cookie{Name:"STATION_ID", Value:sid, Path:"/"})
				}
			}
			c.Set("station", sid)
			return next(c)
		}
	}
}
