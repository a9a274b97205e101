package dto

import commonDto "anoa.com/storerating/pkg/dto"

type CreateUserInput struct {
	Name     string `json:"name" label:"Name" binding:"required,personname"`
	Email    string `json:"email" label:"Email" binding:"required,appemail"`
	Password string `json:"password" label:"Password" binding:"required,password"`
	Address  string `json:"address" label:"Address" binding:"required,address"`
	// Role defaults to normal_user.
	Role string `json:"role" label:"Role" binding:"omitempty,role"`
}

type ListUsersQuery struct {
	commonDto.ListQuery
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
	Role    string `form:"role"`
}
