package dto

import "github.com/Skb111/Community-API-Backend-sub001/internal/model"

type CreateTechRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Description string `json:"description" form:"description"`
}

type UpdateTechRequest struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" form:"description"`
}

type TechFilter struct {
	PaginationQuery
	Search string `form:"search"`
}

func (f TechFilter) FilterMap() map[string]string {
	m := make(map[string]string)
	if f.Search != "" {
		m["search"] = f.Search
	}
	return m
}

type PaginatedTechResponse struct {
	Data []model.Tech   `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
