package handler

import (
	"net/http"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login pengguna
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Kredensial"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), actorFrom(c)); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) RecentLogins(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.RecentLogins(c.Request.Context()))
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Username string `json:"username" validate:"required"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Username); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"ok": true})
}

// ── Users Handler ────────────────────────────────────────────────────────────

type UsersHandler struct{ svc service.AuthService }

func NewUsersHandler(svc service.AuthService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListUsers(c.Request.Context()))
}

func (h *UsersHandler) Approve(c *gin.Context) {
	var req dto.ApproveUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ApproveUser(c.Request.Context(), actorFrom(c), c.Param("id"), req.Role); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *UsersHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateProfile(c.Request.Context(), actorFrom(c), req); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *UsersHandler) ResolveAccountRequest(c *gin.Context) {
	var req struct {
		Approve     bool   `json:"approve"`
		NewPassword string `json:"new_password" validate:"omitempty,min=8"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResolveAccountRequest(c.Request.Context(), actorFrom(c), c.Param("id"), req.Approve, req.NewPassword); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
