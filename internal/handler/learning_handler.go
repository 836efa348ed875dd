package handler

import (
	"net/http"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/service"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/response"
	"github.com/gin-gonic/gin"
)

type LearningHandler struct {
	learningService service.LearningService
}

func NewLearningHandler(learningService service.LearningService) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

func (h *LearningHandler) Create(c *gin.Context) {
	var req dto.CreateLearningRequest
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

	learning, err := h.learningService.Create(c.Request.Context(), userID, req, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, learning)
}

func (h *LearningHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	learning, err := h.learningService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, learning)
}

func (h *LearningHandler) GetAll(c *gin.Context) {
	var filter dto.LearningFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	learnings, err := h.learningService.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, learnings)
}

func (h *LearningHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLearningRequest
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

	learning, err := h.learningService.Update(c.Request.Context(), userID, id, req, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, learning)
}

func (h *LearningHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.learningService.Delete(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "learning deleted successfully"})
}

func (h *LearningHandler) ReplaceTechs(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReplaceLearningTechsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	learning, err := h.learningService.ReplaceTechs(c.Request.Context(), userID, id, parseUUIDStrings(req.TechIDs))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, learning)
}

func (h *LearningHandler) Join(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.learningService.Join(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined learning successfully"})
}

func (h *LearningHandler) Leave(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.learningService.Leave(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left learning successfully"})
}
