// File: internal/dto/user_response.go
package dto

import "maya-shop/internal/model"

// swagger:model dto.UserResponse
type UserResponse struct {
	Message string      `json:"message" example:"User created successfully"`
	User    *model.User `json:"user"`
}
