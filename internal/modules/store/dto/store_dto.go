package dto

import (
	"time"

	ratingDto "anoa.com/storerating/internal/modules/rating/dto"
	statDto "anoa.com/storerating/internal/modules/stat/dto"
	"anoa.com/storerating/internal/modules/store/repository"
	commonDto "anoa.com/storerating/pkg/dto"
	"github.com/google/uuid"
)

type CreateStoreInput struct {
	Name    string `json:"name" label:"Store name" binding:"required,personname"`
	Email   string `json:"email" label:"Email" binding:"required,appemail"`
	Address string `json:"address" label:"Address" binding:"required,address"`
	OwnerID string `json:"owner_id" label:"Owner ID" binding:"required,uuid"`
	// Password, when given, becomes the owner's password if this store
	// promotes them to store owner.
	Password *string `json:"password" label:"Password" binding:"omitempty,password"`
}

type UpdateStoreInput struct {
	Name    string `json:"name" label:"Store name" binding:"required,personname"`
	Email   string `json:"email" label:"Email" binding:"required,appemail"`
	Address string `json:"address" label:"Address" binding:"required,address"`
}

type ListStoresQuery struct {
	commonDto.ListQuery
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
}

type StoreResponse struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	OwnerID       *uuid.UUID    `json:"owner_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	AverageRating statDto.Score `json:"average_rating"`
	TotalRatings  int64         `json:"total_ratings"`
	// UserRating is the caller's own rating, absent until they rate the store.
	UserRating *int    `json:"user_rating,omitempty"`
	OwnerName  *string `json:"owner_name,omitempty"`
	OwnerEmail *string `json:"owner_email,omitempty"`
}

func NewStoreResponse(s repository.StoreSummary) StoreResponse {
	return StoreResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		OwnerID:       s.OwnerID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		AverageRating: statDto.NewScore(s.RatingSum, s.RatingCount),
		TotalRatings:  s.RatingCount,
		UserRating:    s.UserRating,
		OwnerName:     s.OwnerName,
		OwnerEmail:    s.OwnerEmail,
	}
}

type StoreList struct {
	Stores     []StoreResponse          `json:"stores"`
	Pagination commonDto.PaginationMeta `json:"pagination"`
}

type StoreRatingsPage struct {
	Store      StoreResponse              `json:"store"`
	Ratings    []ratingDto.RatingResponse `json:"ratings"`
	Pagination commonDto.PaginationMeta   `json:"pagination"`
}
