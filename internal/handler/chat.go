package handler

import (
	"net/http"
	"strconv"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct{ svc service.ChatService }

func NewChatHandler(svc service.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

// SendAsCustomer writes into the caller's own thread.
func (h *ChatHandler) SendAsCustomer(c *gin.Context) {
	var req dto.SendChatMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Send(c.Request.Context(), actorFrom(c), model.ChatReaderCustomer, req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// SendAsAdmin writes into the thread named by the customerId path param.
func (h *ChatHandler) SendAsAdmin(c *gin.Context) {
	var req dto.SendChatMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if id := c.Param("customerId"); id != "" {
		req.CustomerID = id
	}
	if err := h.svc.Send(c.Request.Context(), actorFrom(c), model.ChatReaderAdmin, req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *ChatHandler) MyThread(c *gin.Context) {
	resp, err := h.svc.Thread(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Thread(c *gin.Context) {
	resp, err := h.svc.Thread(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) ListThreads(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListThreads(c.Request.Context()))
}

// MarkReadAsCustomer marks every message of the caller's thread read.
func (h *ChatHandler) MarkReadAsCustomer(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), actorFrom(c).UserID, model.ChatReaderCustomer); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ChatHandler) MarkReadAsAdmin(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), c.Param("customerId"), model.ChatReaderAdmin); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Activity returns the global audit trail, newest first.
func (h *ChatHandler) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	c.JSON(http.StatusOK, h.svc.Activity(c.Request.Context(), limit))
}
