package handler

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, users)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	user, err := h.userService.Get(principal, id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, user)
}

// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		Email            *string `json:"email" binding:"omitempty,email"`
		Password         *string `json:"password"`
		ContactConsent   *bool   `json:"contact_consent"`
		DataShareConsent *bool   `json:"data_share_consent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid user payload: "+err.Error())
		return
	}

	user, err := h.userService.Update(principal, id, service.UserUpdate{
		Email:            req.Email,
		Password:         req.Password,
		ContactConsent:   req.ContactConsent,
		DataShareConsent: req.DataShareConsent,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, user)
}
