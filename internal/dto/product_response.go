// File: internal/dto/product_response.go
package dto

import "maya-shop/internal/model"

// swagger:model dto.ProductResponse
type ProductResponse struct {
	Message string         `json:"message" example:"Product uploaded successfully"`
	Product *model.Product `json:"product"`
}
