package dto

import "github.com/Skb111/Community-API-Backend-sub001/internal/model"

type CreateLearningRequest struct {
	Title       string  `json:"title" form:"title" binding:"required,max=255"`
	Description string  `json:"description" form:"description"`
	Period      string  `json:"period" form:"period" binding:"omitempty,max=100"`
	Link        *string `json:"link" form:"link" binding:"omitempty,url"`
	Featured    bool    `json:"featured" form:"featured"`
}

type UpdateLearningRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" form:"description"`
	Period      *string `json:"period" form:"period" binding:"omitempty,max=100"`
	Link        *string `json:"link" form:"link" binding:"omitempty,url"`
	Featured    *bool   `json:"featured" form:"featured"`
}

type ReplaceLearningTechsRequest struct {
	TechIDs []string `json:"tech_ids" binding:"dive,uuid"`
}

type LearningFilter struct {
	PaginationQuery
	Search string `form:"search"`
}

type PaginatedLearningResponse struct {
	Data []model.Learning `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}
