package handler

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
	log            *zap.Logger
}

func NewCommentHandler(commentService *service.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, log: log}
}

// POST /projects/:id/issues/:issue_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		Body string `json:"body" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid comment payload: "+err.Error())
		return
	}

	comment, err := h.commentService.Create(principal, projectID, issueID, req.Body)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Created(c, comment)
}

// GET /projects/:id/issues/:issue_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	principal := middleware.GetCurrentUserID(c)

	comments, err := h.commentService.List(principal, projectID, issueID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, comments)
}

// GET /projects/:id/issues/:issue_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	commentID := parseID(c.Param("comment_id"))
	principal := middleware.GetCurrentUserID(c)

	comment, err := h.commentService.Get(principal, projectID, issueID, commentID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, comment)
}

// PUT /projects/:id/issues/:issue_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	commentID := parseID(c.Param("comment_id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		Body string `json:"body" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid comment payload: "+err.Error())
		return
	}

	comment, err := h.commentService.Update(principal, projectID, issueID, commentID, req.Body)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, comment)
}

// DELETE /projects/:id/issues/:issue_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	projectID := parseID(c.Param("id"))
	issueID := parseID(c.Param("issue_id"))
	commentID := parseID(c.Param("comment_id"))
	principal := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(principal, projectID, issueID, commentID); err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{"message": "comment deleted"})
}
