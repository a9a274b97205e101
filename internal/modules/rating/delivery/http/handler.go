package http

import (
	"anoa.com/storerating/internal/middleware"
	"anoa.com/storerating/internal/modules/rating/dto"
	ratingService "anoa.com/storerating/internal/modules/rating/service"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/response"
	"anoa.com/storerating/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RatingHandler struct {
	ratingService ratingService.RatingService
}

func NewRatingHandler(ratingService ratingService.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func storeIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Store not found")
	}
	return id, nil
}

func (h *RatingHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.SubmitRatingInput
	if err := validator.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	rating, created, err := h.ratingService.Submit(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.Created(c, "Rating submitted successfully", gin.H{"rating": rating})
		return
	}
	response.OK(c, "Rating updated successfully", gin.H{"rating": rating})
}

func (h *RatingHandler) GetUserRating(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		response.Error(c, apperror.NotFound("Rating not found"))
		return
	}

	rating, err := h.ratingService.GetForUserAndStore(c.Request.Context(), userID, storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rating retrieved successfully", gin.H{"rating": rating})
}

func (h *RatingHandler) GetStoreRatings(c *gin.Context) {
	storeID, err := storeIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ListRatingsQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.ratingService.ListByStore(c.Request.Context(), storeID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store ratings retrieved successfully", res)
}

func (h *RatingHandler) GetAllRatings(c *gin.Context) {
	var query dto.ListRatingsQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.ratingService.ListAll(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "All ratings retrieved successfully", res)
}

func (h *RatingHandler) GetMyRatings(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ListRatingsQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.ratingService.ListByUser(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User ratings retrieved successfully", res)
}

// Update expects RequireRatingOwnerOrAdmin to have loaded the rating.
func (h *RatingHandler) Update(c *gin.Context) {
	rating := middleware.CurrentRating(c)

	var input dto.UpdateRatingInput
	if err := validator.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.ratingService.Update(c.Request.Context(), rating.ID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rating updated successfully", gin.H{"rating": res})
}

// Delete expects RequireRatingOwnerOrAdmin to have loaded the rating.
func (h *RatingHandler) Delete(c *gin.Context) {
	rating := middleware.CurrentRating(c)

	if err := h.ratingService.Delete(c.Request.Context(), rating.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rating deleted successfully", nil)
}
