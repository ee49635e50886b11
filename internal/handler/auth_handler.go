package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sureshnaloor/projprocurement/internal/config"
	"github.com/sureshnaloor/projprocurement/internal/service"
	"gorm.io/gorm"
)

type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, pair, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"code": 40902, "message": "an account with this email already exists"})
			return
		}
		respondError(c, err)
		return
	}
	created(c, gin.H{"user": user, "tokens": pair})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountDisabled) {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 40101, "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	ok(c, gin.H{"user": user, "tokens": pair})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 40104, "message": err.Error()})
		return
	}
	ok(c, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		h.svc.Logout(c.Request.Context(), req.RefreshToken)
	}
	ok(c, nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	user, err := h.svc.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, user)
}

// ForgotPassword issues a reset link. The response is identical whether or
// not the account exists; outside release mode the link is echoed back for
// development convenience (mail delivery is an external concern).
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	resetURL, err := h.svc.ForgotPassword(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	data := gin.H{}
	if h.cfg.Server.Mode != "release" && resetURL != "" {
		data["reset_url"] = resetURL
	}
	ok(c, data)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.svc.ResetPassword(req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, gin.H{"code": 10005, "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	ok(c, nil)
}
