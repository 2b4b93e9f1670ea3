// File: internal/store/product.go
package store

import (
	"context"
	"fmt"

	"maya-shop/internal/database"
	"maya-shop/internal/model"
)

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products (name, price, stock, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.Name,
		p.Price,
		p.Stock,
		p.Description,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

func AddProductImage(ctx context.Context, db database.DB, productID int, imageURL string) error {
	_, err := db.Exec(ctx,
		`INSERT INTO product_images (product_id, image_url)
		 VALUES ($1, $2)`,
		productID,
		imageURL,
	)
	if err != nil {
		return fmt.Errorf("AddProductImage: %w", err)
	}
	return nil
}

func ListProductImages(ctx context.Context, db database.DB, productID int) ([]string, error) {
	rows, err := db.Query(ctx,
		`SELECT image_url FROM product_images WHERE product_id = $1 ORDER BY id`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListProductImages: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("ListProductImages: %w", err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProductImages: %w", err)
	}
	return urls, nil
}
