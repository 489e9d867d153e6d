package controllerImp

import (
	"net/http"
	"github.com/labstack/echo/v4"
	"agrosim/pkg/auth/controller"
)

type authCtrl struct{}

func NewAuthController() controller.AuthController { return &authCtrl{} }

func (h *authCtrl) DevLogin(c echo.Context) error {
	sid := c.QueryParam("station")
	if sid == "" { sid = "STATION_DEV_DEFAULT" }
	c.SetCookie(&http.Cookie{Name: "STATION_ID", Value: sid, Path: "/"})
	return c.JSON(http.StatusOK, map[string]string{"station": sid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	v := c.Get("station")
	sid, _ := v.(string)
	return c.JSON(http.StatusOK, map[string]string{"station": sid})
}
