package handler

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IssueHandler struct {
	issueService *service.IssueService
	log          *zap.Logger
}

func NewIssueHandler(issueService *service.IssueService, log *zap.Logger) *IssueHandler {
	return &IssueHandler{issueService: issueService, log: log}
}

// POST /projects/:id/issues
//
// The request carries no author field; the author is always the
// authenticated principal.
func (h *IssueHandler) Create(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		Title       string `json:"title" binding:"required,max=128"`
		Description string `json:"description" binding:"max=5000"`
		Tag         string `json:"tag" binding:"required"`
		Priority    string `json:"priority" binding:"required"`
		Status      string `json:"status"`
		AssigneeID  uint   `json:"assignee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid issue payload: "+err.Error())
		return
	}

	issue, err := h.issueService.Create(principal, projectID, service.IssueInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Priority:    req.Priority,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Created(c, issue)
}

// GET /projects/:id/issues
func (h *IssueHandler) List(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	issues, err := h.issueService.List(principal, projectID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, issues)
}

// GET /projects/:id/issues/:issue_id
func (h *IssueHandler) Get(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	principal := middleware.GetCurrentUserID(c)

	issue, err := h.issueService.Get(principal, projectID, issueID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, issue)
}

// PUT /projects/:id/issues/:issue_id
func (h *IssueHandler) Update(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Tag         *string `json:"tag"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
		AssigneeID  *uint   `json:"assignee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid issue payload: "+err.Error())
		return
	}

	issue, err := h.issueService.Update(principal, projectID, issueID, service.IssueUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Priority:    req.Priority,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, issue)
}

// DELETE /projects/:id/issues/:issue_id
func (h *IssueHandler) Delete(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	principal := middleware.GetCurrentUserID(c)

	if err := h.issueService.Delete(principal, projectID, issueID); err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{"message": "issue deleted"})
}
