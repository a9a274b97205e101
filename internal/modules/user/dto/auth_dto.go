package dto

import "anoa.com/storerating/internal/entity"

type RegisterInput struct {
	Name     string `json:"name" label:"Name" binding:"required,personname"`
	Email    string `json:"email" label:"Email" binding:"required,appemail"`
	Password string `json:"password" label:"Password" binding:"required,password"`
	Address  string `json:"address" label:"Address" binding:"required,address"`
}

type LoginInput struct {
	Email    string `json:"email" label:"Email" binding:"required,appemail"`
	Password string `json:"password" label:"Password" binding:"required"`
}

type AuthResponse struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
}
