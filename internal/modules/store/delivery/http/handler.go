package http

import (
	"anoa.com/storerating/internal/middleware"
	"anoa.com/storerating/internal/modules/store/dto"
	storeService "anoa.com/storerating/internal/modules/store/service"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/response"
	"anoa.com/storerating/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StoreHandler struct {
	storeService storeService.StoreService
}

func NewStoreHandler(storeService storeService.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func storeID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Store not found")
	}
	return id, nil
}

func (h *StoreHandler) GetStores(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ListStoresQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.storeService.List(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved successfully", res)
}

func (h *StoreHandler) GetStoresForAdmin(c *gin.Context) {
	var query dto.ListStoresQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.storeService.ListForAdmin(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved successfully", res)
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	var input dto.CreateStoreInput
	if err := validator.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store created successfully", gin.H{"store": store})
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := storeID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	store, err := h.storeService.Get(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store retrieved successfully", gin.H{"store": store})
}

// GetStoreRatings expects RequireStoreOwnerOrAdmin to have loaded the store.
func (h *StoreHandler) GetStoreRatings(c *gin.Context) {
	store := middleware.CurrentStore(c)

	var query dto.ListStoresQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.storeService.Ratings(c.Request.Context(), store.ID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store ratings retrieved successfully", res)
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, err := storeID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateStoreInput
	if err := validator.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store updated successfully", gin.H{"store": store})
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, err := storeID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store deleted successfully", nil)
}
