package handler

import (
	"net/http"

	"github.com/Skb111/Community-API-Backend-sub001/internal/service"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Token hands out a scoped tenant token so clients can query the search
// engine directly instead of proxying every search through this API.
func (h *SearchHandler) Token(c *gin.Context) {
	token, err := h.searchService.GenerateSearchToken()
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
