package dto

import "github.com/Skb111/Community-API-Backend-sub001/internal/model"

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" form:"full_name" binding:"omitempty,max=100"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER ADMIN ROOT"`
}

type ReplaceSkillsRequest struct {
	SkillIDs []string `json:"skill_ids" binding:"required,dive,uuid"`
}

type UserFilter struct {
	PaginationQuery
	Search string `form:"search"`
}

type PaginatedUserResponse struct {
	Data []*model.User  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
