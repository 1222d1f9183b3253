package handler

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContributorHandler struct {
	contributorService *service.ContributorService
	log                *zap.Logger
}

func NewContributorHandler(contributorService *service.ContributorService, log *zap.Logger) *ContributorHandler {
	return &ContributorHandler{contributorService: contributorService, log: log}
}

// POST /projects/:id/contributors
func (h *ContributorHandler) Add(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid contributor payload: "+err.Error())
		return
	}

	contributor, err := h.contributorService.Add(principal, projectID, req.UserID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Created(c, contributor)
}

// GET /projects/:id/contributors
func (h *ContributorHandler) List(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	contributors, err := h.contributorService.List(principal, projectID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, contributors)
}

// GET /projects/:id/contributors/:user_id
func (h *ContributorHandler) Get(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	userID := parseID(c.Param("user_id"))
	principal := middleware.GetCurrentUserID(c)

	contributor, err := h.contributorService.Get(principal, projectID, userID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, contributor)
}

// DELETE /projects/:id/contributors/:user_id
func (h *ContributorHandler) Remove(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	userID := parseID(c.Param("user_id"))
	principal := middleware.GetCurrentUserID(c)

	if err := h.contributorService.Remove(principal, projectID, userID); err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{"message": "contributor removed"})
}
