package handler

import (
	"net/http"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/shipping"

	"github.com/gin-gonic/gin"
)

// ShippingHandler fronts the rate/tracking provider. The proxy endpoints
// relay the provider's raw JSON so existing storefront clients keep working;
// the normalized endpoints serve the dashboard.
type ShippingHandler struct {
	gateway   *shipping.Gateway
	inventory service.InventoryService
}

func NewShippingHandler(gateway *shipping.Gateway, inventory service.InventoryService) *ShippingHandler {
	return &ShippingHandler{gateway: gateway, inventory: inventory}
}

// ShippingCost godoc
// @Summary Proxy tarif pengiriman
// @Tags shipping
// @Accept json
// @Produce json
// @Param body body dto.ShippingCostRequest true "Tujuan dan berat paket"
// @Success 200 {object} object "Respons mentah penyedia"
// @Failure 400 {object} apierror.ProxyError
// @Failure 500 {object} apierror.ProxyError
// @Router /api/shipping-cost [post]
func (h *ShippingHandler) ShippingCost(c *gin.Context) {
	var req dto.ShippingCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewProxy("Permintaan tidak valid: "+err.Error()))
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewProxy("destinationPostalCode, destinationAreaName, dan weight diperlukan."))
		return
	}
	if !h.gateway.Configured() {
		c.JSON(http.StatusInternalServerError, apierror.NewProxy("Kunci API Biteship tidak terkonfigurasi di server."))
		return
	}

	raw, err := h.gateway.RawQuote(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.NewProxy(err.Error()))
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// TrackPackage relays the provider's tracking response untouched.
func (h *ShippingHandler) TrackPackage(c *gin.Context) {
	var req dto.TrackPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewProxy("Permintaan tidak valid: "+err.Error()))
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewProxy("trackingNumber dan courier diperlukan."))
		return
	}
	if !h.gateway.Configured() {
		c.JSON(http.StatusInternalServerError, apierror.NewProxy("Kunci API Biteship tidak terkonfigurasi di server."))
		return
	}

	raw, err := h.gateway.RawTrack(c.Request.Context(), req.TrackingNumber, req.Courier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.NewProxy(err.Error()))
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Quote returns normalized, cheapest-first options. Provider failures come
// back as an empty list so checkout can degrade gracefully.
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req struct {
		DestinationPostalCode string                `json:"destination_postal_code" validate:"required,len=5,numeric"`
		Couriers              string                `json:"couriers"`
		Items                 []dto.CartItemRequest `json:"items"`
	}
	if !bindAndValidate(c, &req) {
		return
	}

	// Weights come from the catalog, never from the client.
	goods := h.inventory.ListFinishedGoods(c.Request.Context())
	weightByID := make(map[string]int, len(goods))
	for _, g := range goods {
		weightByID[g.ID] = g.WeightGrams
	}
	items := make([]model.SaleItem, len(req.Items))
	for i, it := range req.Items {
		weight := weightByID[it.ProductID]
		if weight <= 0 {
			weight = model.DefaultGoodWeightGrams
		}
		items[i] = model.SaleItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			WeightGrams: weight,
		}
	}
	c.JSON(http.StatusOK, h.gateway.Quote(c.Request.Context(), req.DestinationPostalCode, req.Couriers, items))
}

// Track returns the normalized history for dashboard views.
func (h *ShippingHandler) Track(c *gin.Context) {
	trackingNumber := c.Query("tracking_number")
	courier := c.Query("courier")
	if trackingNumber == "" || courier == "" {
		c.JSON(http.StatusBadRequest, apierror.New("tracking_number dan courier wajib diisi"))
		return
	}
	c.JSON(http.StatusOK, h.gateway.Track(c.Request.Context(), trackingNumber, courier))
}
