package handler

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	log            *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, log: log}
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,max=128"`
		Description string `json:"description" binding:"max=5000"`
		Type        string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	principal := middleware.GetCurrentUserID(c)
	project, err := h.projectService.Create(principal, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Created(c, project)
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	principal := middleware.GetCurrentUserID(c)
	projects, err := h.projectService.List(principal)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, projects)
}

// GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	project, err := h.projectService.Get(principal, id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, project)
}

// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Type        *string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	project, err := h.projectService.Update(principal, id, service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, project)
}

// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	principal := middleware.GetCurrentUserID(c)

	if err := h.projectService.Delete(principal, id); err != nil {
		HandleError(c, h.log, err)
		return
	}
	Success(c, gin.H{"message": "project deleted"})
}
