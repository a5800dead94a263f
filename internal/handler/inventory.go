package handler

import (
	"net/http"
	"strconv"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) ListMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListMaterials(c.Request.Context()))
}

func (h *InventoryHandler) ListFinishedGoods(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListFinishedGoods(c.Request.Context()))
}

// StockHistory godoc
// @Summary Riwayat mutasi stok
// @Tags inventory
// @Produce json
// @Param limit query int false "Batas jumlah baris"
// @Success 200 {array} model.StockHistoryEntry
// @Router /v1/inventory/history [get]
func (h *InventoryHandler) StockHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	c.JSON(http.StatusOK, h.svc.StockHistory(c.Request.Context(), limit))
}

func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req dto.UpdateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateStock(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *InventoryHandler) ReplaceMaterials(c *gin.Context) {
	var req dto.ReplaceMaterialsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ReplaceMaterials(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *InventoryHandler) ListGarmentPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListGarmentPatterns(c.Request.Context()))
}

func (h *InventoryHandler) ReplaceGarmentPatterns(c *gin.Context) {
	var req dto.ReplaceGarmentPatternsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ReplaceGarmentPatterns(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Production ───────────────────────────────────────────────────────────────

type ProductionHandler struct{ svc service.InventoryService }

func NewProductionHandler(svc service.InventoryService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

func (h *ProductionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListProductionReports(c.Request.Context()))
}

func (h *ProductionHandler) Create(c *gin.Context) {
	var req dto.AddProductionReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddProductionReport(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// Receive reconciles a production report into warehouse stock; receiving the
// same report twice is a conflict.
func (h *ProductionHandler) Receive(c *gin.Context) {
	if err := h.svc.ReceiveProductionGoods(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
