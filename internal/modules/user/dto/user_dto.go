package dto

import (
	"time"

	"anoa.com/storerating/internal/entity"
	statDto "anoa.com/storerating/internal/modules/stat/dto"
	"anoa.com/storerating/internal/modules/user/repository"
	"github.com/google/uuid"
)

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" label:"Current password" binding:"required"`
	NewPassword     string `json:"newPassword" label:"New password" binding:"required,password"`
}

// UpdateProfileInput leaves a field untouched when it is omitted.
type UpdateProfileInput struct {
	Name    *string `json:"name" label:"Name" binding:"omitempty,personname"`
	Address *string `json:"address" label:"Address" binding:"omitempty,address"`
}

// UserResponse is a user as listed to admins. Rating is the average over
// every store the user owns; it stays null for anyone who is not a store
// owner or whose stores have no ratings yet.
type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Role      entity.Role    `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	Rating    *statDto.Score `json:"rating"`
}

func NewUserResponse(u repository.UserSummary) UserResponse {
	res := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.Role == entity.RoleStoreOwner && u.RatingCount > 0 {
		score := statDto.NewScore(u.RatingSum, u.RatingCount)
		res.Rating = &score
	}
	return res
}
