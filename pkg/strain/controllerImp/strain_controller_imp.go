package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"agrosim/entities"
	repo "agrosim/pkg/strain/repository"
)

type StrainCtrl struct{ repo repo.StrainRepository }

func New(repo repo.StrainRepository) *StrainCtrl { return &StrainCtrl{repo} }

type outbreakReq struct {
	Designation     string  `json:"designation"`
	Infectivity     float64 `json:"infectivity"`
	SporeRadiusM    float64 `json:"spore_radius_m"`
	PesticideResist float64 `json:"pesticide_resist"`
	DroughtExploit  float64 `json:"drought_exploit"`
	DefenseBypass   float64 `json:"defense_bypass"`
}

// Create registers a newly observed outbreak strain, clamping rate fields
// into their probability ranges.
func (h *StrainCtrl) Create(c echo.Context) error {
	var req outbreakReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	if strings.TrimSpace(req.Designation) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error":"designation required"})
	}
	if req.SporeRadiusM <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error":"spore_radius_m must be positive"})
	}
	s := &entities.PathogenStrain{
		Designation:     strings.TrimSpace(req.Designation),
		Infectivity:     clamp01(req.Infectivity),
		SporeRadiusM:    req.SporeRadiusM,
		PesticideResist: clamp01(req.PesticideResist),
		DroughtExploit:  clamp01(req.DroughtExploit),
		DefenseBypass:   clamp01(req.DefenseBypass),
		Generation:      1,
	}
	if err := h.repo.Create(s); err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusCreated, s)
}

func (h *StrainCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	s, err := h.repo.FindByID(uint(id))
	if err != nil { return c.JSON(http.StatusNotFound, map[string]string{"error":"strain not found"}) }
	return c.JSON(http.StatusOK, s)
}

func (h *StrainCtrl) List(c echo.Context) error {
	var (
		out []entities.PathogenStrain
		err error
	)
	if c.QueryParam("active") == "1" {
		out, err = h.repo.ListActive()
	} else {
		out, err = h.repo.List()
	}
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, out)
}

func clamp01(v float64) float64 {
	if v < 0 { return 0 }
	if v > 1 { return 1 }
	return v
}
