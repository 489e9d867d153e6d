package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrosim/entities"
	"agrosim/pkg/ai"
	"agrosim/pkg/combat/service"
	"agrosim/pkg/combat/serviceImp"
)

type advisorySearcher interface {
	Search(query string, k int) ([]entities.AdvisoryChunk, error)
	DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error)
}

type CombatCtrl struct {
	svc      service.CombatService
	llm      ai.Client
	advisory advisorySearcher // may be nil
}

func New(svc service.CombatService, llm ai.Client, advisory advisorySearcher) *CombatCtrl {
	return &CombatCtrl{svc: svc, llm: llm, advisory: advisory}
}

type engageReq struct {
	StrainID uint `json:"strain_id"`
	PhenoID  uint `json:"phenotype_id"`
}

type sweepReq struct {
	Engagements int `json:"engagements"`
}

func (h *CombatCtrl) Engage(c echo.Context) error {
	var req engageReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	res, err := h.svc.Engage(req.StrainID, req.PhenoID)
	switch {
	case errors.Is(err, serviceImp.ErrStrainNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error":"strain not found"})
	case errors.Is(err, serviceImp.ErrPhenotypeNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error":"phenotype not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := map[string]any{"result": res}
	if res.Log.Infected {
		if refs := h.advisoryRefs(res.Strain.Designation+" treatment", 3); len(refs) > 0 {
			resp["suggested_advisories"] = refs
		}
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *CombatCtrl) Sweep(c echo.Context) error {
	var req sweepReq
	if err := c.Bind(&req); err != nil { return c.JSON(http.StatusBadRequest, map[string]string{"error":"bad json"}) }
	rep, err := h.svc.Sweep(req.Engagements)
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }

	resp := map[string]any{"report": rep}
	if h.llm != nil && rep.EngagementsFired > 0 {
		advisoryCtx := ""
		for _, ch := range h.advisoryChunks("pathogen outbreak pesticide rotation", 4) {
			if len(advisoryCtx) > 4000 {
				break
			}
			advisoryCtx += "\n---\n" + ch.Text
		}
		resp["summary_md"] = h.llm.SummarizeSweep(ai.SweepDigest{
			EngagementsFired: rep.EngagementsFired,
			Infections:       rep.Infections,
			Mutations:        rep.Mutations,
			Extinctions:      rep.Extinctions,
			CropFailures:     rep.CropFailures,
		}, advisoryCtx)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CombatCtrl) HistoryByPheno(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := h.svc.HistoryByPheno(uint(id))
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, out)
}

func (h *CombatCtrl) HistoryByStrain(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := h.svc.HistoryByStrain(uint(id))
	if err != nil { return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()}) }
	return c.JSON(http.StatusOK, out)
}

func (h *CombatCtrl) advisoryChunks(query string, k int) []entities.AdvisoryChunk {
	if h.advisory == nil {
		return nil
	}
	chunks, _ := h.advisory.Search(query, k) // best effort
	return chunks
}

func (h *CombatCtrl) advisoryRefs(query string, max int) []entities.AdvisoryRef {
	chunks := h.advisoryChunks(query, max*2)
	if len(chunks) == 0 {
		return nil
	}
	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(chunks))
	for _, ch := range chunks {
		if _, ok := seen[ch.DocID]; !ok {
			seen[ch.DocID] = struct{}{}
			ids = append(ids, ch.DocID)
		}
	}
	meta, err := h.advisory.DocsMeta(ids)
	if err != nil {
		return nil
	}
	refs := make([]entities.AdvisoryRef, 0, max)
	for _, id := range ids {
		if len(refs) >= max {
			break
		}
		if d, ok := meta[id]; ok {
			refs = append(refs, entities.AdvisoryRef{Title: d.Title, URL: d.SourceURL})
		}
	}
	return refs
}
