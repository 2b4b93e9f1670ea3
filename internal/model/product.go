// File: internal/model/product.go
package model

import "time"

type Product struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Price       float64   `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	Description string    `db:"description" json:"description"`
	Images      []string  `db:"-" json:"images"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
