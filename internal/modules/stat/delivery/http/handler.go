package http

import (
	statService "anoa.com/storerating/internal/modules/stat/service"
	"anoa.com/storerating/pkg/response"
	"github.com/gin-gonic/gin"
)

// StatHandler serves the admin dashboards for users, stores and ratings.
type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) GetUserStats(c *gin.Context) {
	stats, err := h.statService.UserStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User statistics retrieved successfully", stats)
}

func (h *StatHandler) GetStoreStats(c *gin.Context) {
	overview, err := h.statService.StoreOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Store statistics retrieved successfully", overview)
}

func (h *StatHandler) GetRatingStats(c *gin.Context) {
	stats, err := h.statService.SystemStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Rating statistics retrieved successfully", stats)
}
