package dto

import "github.com/Skb111/Community-API-Backend-sub001/internal/model"

type CreateBlogRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Body        string `json:"body" form:"body" binding:"required"`
	Description string `json:"description" form:"description"`
	Topic       string `json:"topic" form:"topic" binding:"omitempty,max=100"`
	Featured    bool   `json:"featured" form:"featured"`
}

type UpdateBlogRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,max=255"`
	Body        *string `json:"body" form:"body"`
	Description *string `json:"description" form:"description"`
	Topic       *string `json:"topic" form:"topic" binding:"omitempty,max=100"`
	Featured    *bool   `json:"featured" form:"featured"`
}

type BlogFilter struct {
	PaginationQuery
	Topic    string `form:"topic"`
	Featured *bool  `form:"featured"`
	Search   string `form:"search"`
	AuthorID string `form:"authorId" binding:"omitempty,uuid"`
}

type PaginatedBlogResponse struct {
	Data []model.Blog   `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
