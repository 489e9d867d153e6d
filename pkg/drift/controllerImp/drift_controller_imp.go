package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrosim/pkg/drift/service"
)

type DriftCtrl struct{ svc service.DriftService }

func New(svc service.DriftService) *DriftCtrl { return &DriftCtrl{svc} }

// Run fires one drift batch on demand. The same service method runs on the
// periodic ticker.
func (h *DriftCtrl) Run(c echo.Context) error {
	n, err := h.svc.ProcessBatch()
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, map[string]any{"applications": n})
}

func (h *DriftCtrl) History(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := h.svc.History(uint(id))
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, out)
}
