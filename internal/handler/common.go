package handler

import (
	"io"
	"net/http"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/service"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return uuid.Nil, false
	}
	return uuid.MustParse(uri.ID), true
}

// formImage pulls an optional image out of a multipart form. The returned
// file stays open until the request context is released, so callers must
// consume it within the handler.
func formImage(c *gin.Context, field string) (*service.AvatarFile, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return nil, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return nil, false
	}

	return &service.AvatarFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}, true
}

func closeImage(f *service.AvatarFile) {
	if f == nil {
		return
	}
	if closer, ok := f.Reader.(io.Closer); ok {
		closer.Close()
	}
}

func parseUUIDStrings(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
