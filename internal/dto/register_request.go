// File: internal/dto/register_request.go
package dto

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,min=2,max=50" example:"Alice"`
	Lastname  string `json:"lastname" validate:"required,min=2,max=50" example:"Wang"`
	Email     string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password  string `json:"password" validate:"required,min=8" example:"Secret123!"`
	Role      string `json:"role" validate:"required,oneof=admin staff" example:"staff"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other" example:"female"`
}
