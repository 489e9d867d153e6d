package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrosim/entities"
	"agrosim/pkg/genome/service"
	"agrosim/pkg/genome/serviceImp"
)

type GenomeCtrl struct{ svc service.GenomeService }

func New(svc service.GenomeService) *GenomeCtrl { return &GenomeCtrl{svc} }

type createReq struct {
	StrainName             string  `json:"strain_name"`
	Species                string  `json:"species"`
	DroughtToleranceAllele float64 `json:"drought_tolerance_allele"`
	HeatShockAllele        float64 `json:"heat_shock_allele"`
	PestResistAllele       float64 `json:"pest_resist_allele"`
	YieldVigor             float64 `json:"yield_vigor"`
	Generation             int     `json:"generation"`
	CrisprEdited           bool    `json:"crispr_edited"`
}

type crossReq struct {
	FatherID   uint   `json:"father_id"`
	MotherID   uint   `json:"mother_id"`
	StrainName string `json:"strain_name"`
}

func (h *GenomeCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	g := &entities.SeedGenome{
		StrainName:             req.StrainName,
		Species:                req.Species,
		DroughtToleranceAllele: req.DroughtToleranceAllele,
		HeatShockAllele:        req.HeatShockAllele,
		PestResistAllele:       req.PestResistAllele,
		YieldVigor:             req.YieldVigor,
		Generation:             req.Generation,
		CrisprEdited:           req.CrisprEdited,
	}
	out, err := h.svc.Register(g)
	if err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusCreated, out)
}

func (h *GenomeCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	g, err := h.svc.GetByID(uint(id))
	if errors.Is(err, serviceImp.ErrGenomeNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error":"genome not found"})
	}
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, g)
}

func (h *GenomeCtrl) List(c echo.Context) error {
	gs, err := h.svc.List()
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, gs)
}

func (h *GenomeCtrl) Cross(c echo.Context) error {
	var req crossReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	if req.StrainName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error":"strain_name required"})
	}
	child, err := h.svc.Cross(req.FatherID, req.MotherID, req.StrainName)
	if errors.Is(err, serviceImp.ErrGenomeNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error":"parent genome not found"})
	}
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusCreated, child)
}
