package handler

import (
	"context"
	"net/http"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/service"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cover, ok := formImage(c, "cover")
	if !ok {
		return
	}
	defer closeImage(cover)

	project, err := h.projectService.Create(c.Request.Context(), userID, req, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) GetAll(c *gin.Context) {
	var filter dto.ProjectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	projects, err := h.projectService.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cover, ok := formImage(c, "cover")
	if !ok {
		return
	}
	defer closeImage(cover)

	project, err := h.projectService.Update(c.Request.Context(), userID, id, req, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

func (h *ProjectHandler) ReplaceTechs(c *gin.Context) {
	h.techMutation(c, h.projectService.ReplaceTechs)
}

func (h *ProjectHandler) AddTechs(c *gin.Context) {
	h.techMutation(c, h.projectService.AddTechs)
}

func (h *ProjectHandler) RemoveTech(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	techID, err := uuid.Parse(c.Param("techId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tech id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	project, err := h.projectService.RemoveTech(c.Request.Context(), userID, id, techID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) ReplaceContributors(c *gin.Context) {
	h.contributorMutation(c, h.projectService.ReplaceContributors)
}

func (h *ProjectHandler) AddContributors(c *gin.Context) {
	h.contributorMutation(c, h.projectService.AddContributors)
}

func (h *ProjectHandler) RemoveContributor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	contributorID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	project, err := h.projectService.RemoveContributor(c.Request.Context(), userID, id, contributorID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

type idSetOp func(ctx context.Context, actorID, projectID uuid.UUID, ids []uuid.UUID) (*model.Project, error)

func (h *ProjectHandler) techMutation(c *gin.Context, op idSetOp) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReplaceProjectTechsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	project, err := op(c.Request.Context(), userID, id, parseUUIDStrings(req.TechIDs))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) contributorMutation(c *gin.Context, op idSetOp) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReplaceContributorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	project, err := op(c.Request.Context(), userID, id, parseUUIDStrings(req.UserIDs))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}
