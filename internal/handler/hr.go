package handler

import (
	"net/http"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"

	"github.com/gin-gonic/gin"
)

type HRHandler struct{ svc service.HRService }

func NewHRHandler(svc service.HRService) *HRHandler { return &HRHandler{svc: svc} }

func (h *HRHandler) ClockIn(c *gin.Context) {
	var req dto.ClockInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ClockIn(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *HRHandler) ClockOut(c *gin.Context) {
	if err := h.svc.ClockOut(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *HRHandler) ListAttendance(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListAttendance(c.Request.Context()))
}

func (h *HRHandler) LogPrayer(c *gin.Context) {
	var req dto.PrayerLogRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.LogPrayer(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *HRHandler) ListPrayers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListPrayers(c.Request.Context()))
}

func (h *HRHandler) SubmitSurvey(c *gin.Context) {
	var req dto.SurveyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SubmitSurvey(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *HRHandler) AddPayrollEntry(c *gin.Context) {
	var req dto.PayrollEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddPayrollEntry(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *HRHandler) ConfirmPayroll(c *gin.Context) {
	if err := h.svc.ConfirmPayroll(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *HRHandler) ListPayroll(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListPayroll(c.Request.Context()))
}

func (h *HRHandler) Performance(c *gin.Context) {
	resp, err := h.svc.Performance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
