package controllerImp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agrosim/entities"
	repo "agrosim/pkg/weather/repository"
)

type WeatherCtrl struct{ repo repo.WeatherRepository }

func New(repo repo.WeatherRepository) *WeatherCtrl { return &WeatherCtrl{repo} }

type eventReq struct {
	EventType   string   `json:"event_type"`
	Extreme     bool     `json:"extreme"`
	SeverityIdx *float64 `json:"severity_idx"`
	Note        string   `json:"note"`
	RecordedAt  string   `json:"recorded_at"` // RFC3339, defaults to now
}

func (h *WeatherCtrl) Create(c echo.Context) error {
	fid, _ := strconv.Atoi(c.Param("id"))
	var req eventReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	typ := strings.ToLower(strings.TrimSpace(req.EventType))
	if typ == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error":"event_type required"})
	}
	at := time.Now()
	if req.RecordedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.RecordedAt); err == nil { at = t }
	}
	ev := &entities.WeatherEvent{FarmID: uint(fid), EventType: typ, Extreme: req.Extreme, SeverityIdx: req.SeverityIdx, Note: req.Note, RecordedAt: at}
	if err := h.repo.Create(ev); err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusCreated, ev)
}

func (h *WeatherCtrl) List(c echo.Context) error {
	fid, _ := strconv.Atoi(c.Param("id"))
	out, err := h.repo.Recent(uint(fid), 60)
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, out)
}
