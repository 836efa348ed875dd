package handler

import (
	"net/http"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/service"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register accepts either JSON or a multipart form with an optional avatar.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	avatar, ok := formImage(c, "avatar")
	if !ok {
		return
	}
	defer closeImage(avatar)

	res, err := h.authService.Register(c.Request.Context(), req, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
