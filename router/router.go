package router

import (
	"github.com/labstack/echo/v4"
	"agrosim/pkg/middleware"
)

func New(
	e *echo.Echo,
	stationAuth bool,
	genomeCtrl interface{ Create(echo.Context) error; Get(echo.Context) error; List(echo.Context) error; Cross(echo.Context) error },
	phenoCtrl  interface{ Spawn(echo.Context) error; Get(echo.Context) error; ListByFarm(echo.Context) error; Harvest(echo.Context) error },
	weatherCtrl interface{ Create(echo.Context) error; List(echo.Context) error },
	driftCtrl  interface{ Run(echo.Context) error; History(echo.Context) error },
	strainCtrl interface{ Create(echo.Context) error; Get(echo.Context) error; List(echo.Context) error },
	combatCtrl interface{ Engage(echo.Context) error; Sweep(echo.Context) error; HistoryByPheno(echo.Context) error; HistoryByStrain(echo.Context) error },
	authCtrl   interface{ DevLogin(echo.Context) error; WhoAmI(echo.Context) error },
	advCtrl    interface{ IngestText(echo.Context) error; IngestURL(echo.Context) error; Search(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },

) *echo.Echo {
	if stationAuth {
		e.Use(middleware.StationAuth(true))
	} else {
		e.Use(middleware.DevLogin())
	}
	api := e.Group("")

	api.GET("/whoami", authCtrl.WhoAmI)
	api.GET("/devlogin", authCtrl.DevLogin)
	e.GET("/health", healthCtrl.Health)

	// advisory endpoints
	api.POST("/advisories/ingest",     advCtrl.IngestText)
	api.POST("/advisories/ingest/url", advCtrl.IngestURL)
	api.GET("/advisories/search",      advCtrl.Search)

	api.POST("/genomes", genomeCtrl.Create)
	api.GET("/genomes/:id", genomeCtrl.Get)
	api.GET("/genomes", genomeCtrl.List)
	api.POST("/genomes/cross", genomeCtrl.Cross)

	api.POST("/phenotypes", phenoCtrl.Spawn)
	api.GET("/phenotypes/:id", phenoCtrl.Get)
	api.POST("/phenotypes/:id/harvest", phenoCtrl.Harvest)
	api.GET("/farms/:id/phenotypes", phenoCtrl.ListByFarm)

	api.POST("/farms/:id/weather", weatherCtrl.Create)
	api.GET("/farms/:id/weather", weatherCtrl.List)

	api.POST("/simulation/drift", driftCtrl.Run)
	api.GET("/phenotypes/:id/drift", driftCtrl.History)

	api.POST("/strains", strainCtrl.Create)
	api.GET("/strains/:id", strainCtrl.Get)
	api.GET("/strains", strainCtrl.List)

	g := e.Group("/combat")
	g.POST("/engagements", combatCtrl.Engage)
	g.POST("/sweeps", combatCtrl.Sweep)

	api.GET("/phenotypes/:id/engagements", combatCtrl.HistoryByPheno)
	api.GET("/strains/:id/engagements", combatCtrl.HistoryByStrain)
	return e
}
