package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrosim/pkg/phenotype/service"
	"agrosim/pkg/phenotype/serviceImp"
)

type PhenoCtrl struct{ svc service.PhenotypeService }

func New(svc service.PhenotypeService) *PhenoCtrl { return &PhenoCtrl{svc} }

type spawnReq struct {
	GenomeID     uint    `json:"genome_id"`
	FarmID       uint    `json:"farm_id"`
	PrecisionIdx float64 `json:"precision_agriculture_index"`
}

func (h *PhenoCtrl) Spawn(c echo.Context) error {
	var req spawnReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	p, err := h.svc.Spawn(req.GenomeID, req.FarmID, req.PrecisionIdx)
	switch {
	case errors.Is(err, serviceImp.ErrGenomeNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error":"genome not found"})
	case errors.Is(err, serviceImp.ErrBadPrecision):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PhenoCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.svc.GetByID(uint(id))
	if errors.Is(err, serviceImp.ErrPhenotypeNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error":"phenotype not found"})
	}
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, p)
}

func (h *PhenoCtrl) ListByFarm(c echo.Context) error {
	fid, _ := strconv.Atoi(c.Param("id"))
	out, err := h.svc.ListByFarm(uint(fid))
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, out)
}

func (h *PhenoCtrl) Harvest(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.svc.Harvest(uint(id))
	switch {
	case errors.Is(err, serviceImp.ErrPhenotypeNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error":"phenotype not found"})
	case errors.Is(err, serviceImp.ErrNotGrowing):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}
