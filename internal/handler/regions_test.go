package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/region"
)

func cascadeRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataset := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/provinces.json":
			w.Write([]byte(`[{"id":"32","name":"Jawa Barat"},{"id":"33","name":"Jawa Tengah"}]`))
		case "/regencies/33.json":
			w.Write([]byte(`[{"id":"3374","name":"Kota Semarang"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(dataset.Close)

	client := region.NewClient(dataset.URL, nil)
	h := NewRegionsHandler(client, region.NewSessions(client))

	r := gin.New()
	r.POST("/v1/regions/cascade/:sessionId/select", h.CascadeSelect)
	r.GET("/v1/regions/cascade/:sessionId/:level", h.CascadeOptions)
	return r
}

func TestCascadeEndpointsWalkTheForm(t *testing.T) {
	r := cascadeRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/regions/cascade/form-1/province", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	body := strings.NewReader(`{"level":"province","regionId":"33"}`)
	req = httptest.NewRequest(http.MethodPost, "/v1/regions/cascade/form-1/select", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/regions/cascade/form-1/regency", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var regencies []region.Region
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regencies))
	require.Len(t, regencies, 1)
	assert.Equal(t, "Kota Semarang", regencies[0].Name)
}

func TestCascadeOptionsWithoutParentSelection(t *testing.T) {
	r := cascadeRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/regions/cascade/form-2/regency", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCascadeSelectRejectsUnknownLevel(t *testing.T) {
	r := cascadeRouter(t)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"level":"negara","regionId":"1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/regions/cascade/form-3/select", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
