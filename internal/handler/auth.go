package handler

import (
	"strings"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username         string `json:"username" binding:"required,max=64"`
		Email            string `json:"email" binding:"omitempty,email"`
		Password         string `json:"password" binding:"required"`
		Age              int    `json:"age" binding:"required"`
		ContactConsent   bool   `json:"contact_consent"`
		DataShareConsent bool   `json:"data_share_consent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid signup payload: "+err.Error())
		return
	}

	user, err := h.authService.Signup(service.SignupInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		Age:              req.Age,
		ContactConsent:   req.ContactConsent,
		DataShareConsent: req.DataShareConsent,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Created(c, user)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid login payload: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{
		"token":      token,
		"expires_at": expireAt,
		"user":       user.Brief(),
	})
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	token, expireAt, err := h.authService.RefreshToken(userID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{"token": token, "expires_at": expireAt})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenStr := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.authService.Logout(c.Request.Context(), tokenStr); err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{"message": "logged out"})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	Success(c, user)
}
