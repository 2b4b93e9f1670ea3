// File: internal/dto/sign_in_response.go
package dto

// SignInUser 登入成功後僅回傳顯示用欄位
type SignInUser struct {
	Firstname string `json:"firstname" example:"Alice"`
	Lastname  string `json:"lastname" example:"Wang"`
}

// swagger:model dto.SignInResponse
type SignInResponse struct {
	Message string     `json:"message" example:"Sign-in successful."`
	Token   string     `json:"token" example:"eyJhbGciOi..."`
	User    SignInUser `json:"user"`
}
