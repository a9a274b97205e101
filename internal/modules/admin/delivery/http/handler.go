package handler

import (
	"anoa.com/storerating/internal/modules/admin/dto"
	adminService "anoa.com/storerating/internal/modules/admin/service"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/response"
	"anoa.com/storerating/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserInput
	if err := validator.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", gin.H{"user": user})
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := validator.BindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}

	users, err := h.adminService.ListUsers(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Users retrieved successfully", gin.H{"users": users, "total": len(users)})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NotFound("User not found"))
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}
