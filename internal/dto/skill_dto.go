package dto

import "github.com/Skb111/Community-API-Backend-sub001/internal/model"

type CreateSkillRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateSkillRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

type SkillFilter struct {
	PaginationQuery
	Search string `form:"search"`
}

func (f SkillFilter) FilterMap() map[string]string {
	m := make(map[string]string)
	if f.Search != "" {
		m["search"] = f.Search
	}
	return m
}

type PaginatedSkillResponse struct {
	Data []model.Skill  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
