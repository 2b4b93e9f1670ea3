// File: internal/dto/update_user_request.go
package dto

// UpdateUserRequest 的可選欄位以指標表達「未提供」，
// 可更新欄位在編譯期固定。
// swagger:model dto.UpdateUserRequest
type UpdateUserRequest struct {
	ID         int     `json:"id" validate:"required" example:"1"`
	ProfilePic *string `json:"profilePic" validate:"omitempty,url" example:"https://example.com/me.png"`
	Firstname  *string `json:"firstname" validate:"omitempty,min=2,max=50" example:"Alice"`
	Lastname   *string `json:"lastname" validate:"omitempty,min=2,max=50" example:"Wang"`
	Gender     *string `json:"gender" validate:"omitempty,oneof=male female other" example:"female"`
}
