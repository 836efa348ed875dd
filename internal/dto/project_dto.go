package dto

import (
	"strconv"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
)

type CreateProjectRequest struct {
	Title       string  `json:"title" form:"title" binding:"required,max=255"`
	Description string  `json:"description" form:"description"`
	RepoLink    *string `json:"repo_link" form:"repo_link" binding:"omitempty,url"`
	Featured    bool    `json:"featured" form:"featured"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" form:"description"`
	RepoLink    *string `json:"repo_link" form:"repo_link" binding:"omitempty,url"`
	Featured    *bool   `json:"featured" form:"featured"`
}

type ProjectFilter struct {
	PaginationQuery
	Featured *bool  `form:"featured"`
	Search   string `form:"search"`
	TechID   string `form:"techId" binding:"omitempty,uuid"`
	UserID   string `form:"userId" binding:"omitempty,uuid"`
}

// FilterMap renders the filter set for cache key building. Only set filters
// appear, so logically identical requests share a key.
func (f ProjectFilter) FilterMap() map[string]string {
	m := make(map[string]string)
	if f.Featured != nil {
		m["featured"] = strconv.FormatBool(*f.Featured)
	}
	if f.Search != "" {
		m["search"] = f.Search
	}
	if f.TechID != "" {
		m["techId"] = f.TechID
	}
	if f.UserID != "" {
		m["userId"] = f.UserID
	}
	return m
}

type ReplaceProjectTechsRequest struct {
	TechIDs []string `json:"tech_ids" binding:"dive,uuid"`
}

type ReplaceContributorsRequest struct {
	UserIDs []string `json:"user_ids" binding:"dive,uuid"`
}

type PaginatedProjectResponse struct {
	Data []model.Project `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}
