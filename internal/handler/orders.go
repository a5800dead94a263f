package handler

import (
	"net/http"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) isPreOrder(c *gin.Context) bool {
	return c.Query("type") == "po"
}

// Cart returns the caller's cart (query type=po selects the pre-order cart).
func (h *OrdersHandler) Cart(c *gin.Context) {
	key := cartKeyFrom(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Sesi keranjang tidak ditemukan"))
		return
	}
	c.JSON(http.StatusOK, h.svc.Cart(c.Request.Context(), key, h.isPreOrder(c)))
}

func (h *OrdersHandler) ReplaceCart(c *gin.Context) {
	key := cartKeyFrom(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Sesi keranjang tidak ditemukan"))
		return
	}
	var req dto.ReplaceCartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	items, err := h.svc.ReplaceCart(c.Request.Context(), key, h.isPreOrder(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Place godoc
// @Summary Checkout keranjang menjadi pesanan
// @Tags orders
// @Accept json
// @Produce json
// @Param type query string false "Jenis pesanan: kosong (langsung) atau po"
// @Param body body dto.PlaceOrderRequest true "Data pengiriman"
// @Success 201 {object} dto.OrderPlacedResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders [post]
func (h *OrdersHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	key := req.CartKey
	if key == "" {
		key = cartKeyFrom(c)
	}
	if key == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Sesi keranjang tidak ditemukan"))
		return
	}
	resp, err := h.svc.PlaceOrder(c.Request.Context(), actorFrom(c), key, h.isPreOrder(c), req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListOrders(c.Request.Context()))
}

func (h *OrdersHandler) Get(c *gin.Context) {
	order, err := h.svc.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrdersHandler) ApprovePayment(c *gin.Context) {
	if err := h.svc.ApprovePayment(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Dispatch finalizes the order into a sale and queues the receipt pipeline.
func (h *OrdersHandler) Dispatch(c *gin.Context) {
	var req dto.DispatchOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Dispatch(c.Request.Context(), actorFrom(c), c.Param("id"), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *OrdersHandler) ListSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListSales(c.Request.Context()))
}

// ── Warranty ─────────────────────────────────────────────────────────────────

type WarrantyHandler struct{ svc service.OrderService }

func NewWarrantyHandler(svc service.OrderService) *WarrantyHandler {
	return &WarrantyHandler{svc: svc}
}

func (h *WarrantyHandler) Submit(c *gin.Context) {
	var req dto.WarrantyClaimRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SubmitWarrantyClaim(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *WarrantyHandler) Review(c *gin.Context) {
	var req dto.UpdateWarrantyStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ReviewWarrantyClaim(c.Request.Context(), actorFrom(c), c.Param("id"), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WarrantyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListWarrantyClaims(c.Request.Context()))
}
