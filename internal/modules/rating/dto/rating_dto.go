package dto

import (
	"time"

	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/modules/rating/repository"
	statDto "anoa.com/storerating/internal/modules/stat/dto"
	commonDto "anoa.com/storerating/pkg/dto"
	"github.com/google/uuid"
)

type SubmitRatingInput struct {
	StoreID string `json:"store_id" label:"Store ID" binding:"required,uuid"`
	Rating  *int   `json:"rating" label:"Rating" binding:"required,rating"`
}

type UpdateRatingInput struct {
	Rating *int `json:"rating" label:"Rating" binding:"required,rating"`
}

type ListRatingsQuery struct {
	commonDto.ListQuery
}

// Include selects the joined columns a rating is rendered with. Each
// endpoint exposes only what its audience may see.
type Include uint8

const (
	IncludeUserName Include = 1 << iota
	IncludeUserEmail
	IncludeStoreName
	IncludeStoreEmail
	IncludeStoreAddress
)

type RatingResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	StoreID      uuid.UUID `json:"store_id"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserName     string    `json:"user_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	StoreName    string    `json:"store_name,omitempty"`
	StoreEmail   string    `json:"store_email,omitempty"`
	StoreAddress string    `json:"store_address,omitempty"`
}

func FromEntity(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromView(v repository.RatingView, include Include) RatingResponse {
	res := RatingResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		StoreID:   v.StoreID,
		Rating:    v.Rating,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if include&IncludeUserName != 0 {
		res.UserName = v.UserName
	}
	if include&IncludeUserEmail != 0 {
		res.UserEmail = v.UserEmail
	}
	if include&IncludeStoreName != 0 {
		res.StoreName = v.StoreName
	}
	if include&IncludeStoreEmail != 0 {
		res.StoreEmail = v.StoreEmail
	}
	if include&IncludeStoreAddress != 0 {
		res.StoreAddress = v.StoreAddress
	}
	return res
}

func FromViews(views []repository.RatingView, include Include) []RatingResponse {
	ratings := make([]RatingResponse, 0, len(views))
	for _, v := range views {
		ratings = append(ratings, FromView(v, include))
	}
	return ratings
}

type RatingList struct {
	Ratings []RatingResponse `json:"ratings"`
	Total   int              `json:"total"`
}

type StoreRatingList struct {
	Ratings    []RatingResponse         `json:"ratings"`
	Statistics *statDto.StoreStatistics `json:"statistics"`
	Total      int                      `json:"total"`
}
