// File: internal/dto/product_upload_request.go
package dto

// ProductUploadRequest 以 multipart form 傳遞，圖片檔另取自 form files
// swagger:model dto.ProductUploadRequest
type ProductUploadRequest struct {
	Name        string  `form:"name" validate:"required" example:"Mug"`
	Price       float64 `form:"price" validate:"required,gt=0" example:"9.9"`
	Stock       int     `form:"stock" validate:"gte=0" example:"10"`
	Description string  `form:"description" validate:"required,max=500" example:"Ceramic mug"`
}
