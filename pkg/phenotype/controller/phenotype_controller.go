package controller

import "github.com/labstack/echo/v4"

type PhenotypeController interface {
	Spawn(c echo.Context) error
	Get(c echo.Context) error
	ListByFarm(c echo.Context) error
	Harvest(c echo.Context) error
}
