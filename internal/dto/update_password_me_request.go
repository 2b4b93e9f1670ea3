// File: internal/dto/update_password_me_request.go
package dto

// swagger:model dto.UpdatePasswordMeRequest
type UpdatePasswordMeRequest struct {
	OldPassword string `json:"old_password" validate:"required" example:"OldSecret123!"`
	NewPassword string `json:"new_password" validate:"required,min=8" example:"NewSecret456!"`
}
