package controllerImp

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosim/database"
	"agrosim/entities"
	genomeRepoImp "agrosim/pkg/genome/repositoryImp"
	genomeSvcImp "agrosim/pkg/genome/serviceImp"
)

func newCtrl(t *testing.T) *GenomeCtrl {
	t.Helper()
	db := database.OpenMemory()
	return New(genomeSvcImp.New(genomeRepoImp.New(db), rand.New(rand.NewSource(1))))
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	_ = h(c)
	return rec
}

func TestCreateAndGet(t *testing.T) {
	e := echo.New()
	h := newCtrl(t)

	rec := doJSON(e, h.Create, http.MethodPost, "/genomes",
		`{"strain_name":"KhonKaen-3","species":"sugarcane","drought_tolerance_allele":0.7,"heat_shock_allele":0.4,"pest_resist_allele":0.6,"yield_vigor":1.1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var g entities.SeedGenome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.NotZero(t, g.GenomeID)
	assert.Equal(t, 1, g.Generation)

	rec = doJSON(e, h.Get, http.MethodGet, "/genomes/1", "", "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, h.Get, http.MethodGet, "/genomes/999", "", "id", "999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRejectsBlankStrainName(t *testing.T) {
	e := echo.New()
	h := newCtrl(t)
	rec := doJSON(e, h.Create, http.MethodPost, "/genomes", `{"strain_name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrossEndpoint(t *testing.T) {
	e := echo.New()
	h := newCtrl(t)

	for _, name := range []string{"A", "B"} {
		rec := doJSON(e, h.Create, http.MethodPost, "/genomes",
			`{"strain_name":"`+name+`","species":"rice","drought_tolerance_allele":0.5,"yield_vigor":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(e, h.Cross, http.MethodPost, "/genomes/cross", `{"father_id":1,"mother_id":2,"strain_name":"A x B"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var child entities.SeedGenome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &child))
	assert.Equal(t, "A x B", child.StrainName)
	assert.Equal(t, 2, child.Generation)

	rec = doJSON(e, h.Cross, http.MethodPost, "/genomes/cross", `{"father_id":1,"mother_id":99,"strain_name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, h.Cross, http.MethodPost, "/genomes/cross", `{"father_id":1,"mother_id":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "strain_name is required")
}
