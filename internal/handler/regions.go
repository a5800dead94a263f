package handler

import (
	"errors"
	"net/http"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/region"

	"github.com/gin-gonic/gin"
)

// RegionsHandler serves the address cascade lists. These endpoints are
// public: the storefront checkout form uses them before any login.
type RegionsHandler struct {
	client   *region.Client
	sessions *region.Sessions
}

func NewRegionsHandler(client *region.Client, sessions *region.Sessions) *RegionsHandler {
	return &RegionsHandler{client: client, sessions: sessions}
}

func (h *RegionsHandler) Provinces(c *gin.Context) {
	regions, err := h.client.Provinces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("Gagal memuat daftar provinsi"))
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *RegionsHandler) Regencies(c *gin.Context) {
	regions, err := h.client.Regencies(c.Request.Context(), c.Param("provinceId"))
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("Gagal memuat daftar kota/kabupaten"))
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *RegionsHandler) Districts(c *gin.Context) {
	regions, err := h.client.Districts(c.Request.Context(), c.Param("regencyId"))
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("Gagal memuat daftar kecamatan"))
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *RegionsHandler) Villages(c *gin.Context) {
	regions, err := h.client.Villages(c.Request.Context(), c.Param("districtId"))
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("Gagal memuat daftar kelurahan"))
		return
	}
	c.JSON(http.StatusOK, regions)
}

// CascadeSelect records the customer's pick at one level of their address
// form session. Everything below the picked level is invalidated, so a child
// list still loading for the old pick can no longer land.
func (h *RegionsHandler) CascadeSelect(c *gin.Context) {
	var req struct {
		Level    string `json:"level"    validate:"required,oneof=province regency district village"`
		RegionID string `json:"regionId" validate:"required"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	cs := h.sessions.Get(c.Param("sessionId"))
	if err := cs.Select(req.Level, req.RegionID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"level": req.Level, "selected": req.RegionID})
}

// CascadeOptions loads the option list for one level of the session's form,
// based on its current parent selection. A 409 means the selection changed
// while the dataset fetch was in flight; the client simply drops the response.
func (h *RegionsHandler) CascadeOptions(c *gin.Context) {
	cs := h.sessions.Get(c.Param("sessionId"))
	regions, err := cs.Load(c.Request.Context(), c.Param("level"))
	switch {
	case errors.Is(err, region.ErrStale):
		c.JSON(http.StatusConflict, apierror.New("Pilihan wilayah berubah, muat ulang daftar"))
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, regions)
}

// ProvisionalPostalCode hands the checkout form a flagged placeholder when
// the dataset has no postal code for the chosen village.
func (h *RegionsHandler) ProvisionalPostalCode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"postal_code": region.ProvisionalPostalCode(),
		"provisional": true,
	})
}
