package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null" validate:"required"`
	Price       float64   `json:"price" gorm:"not null" validate:"gte=0"`
	Image       string    `json:"image,omitempty" gorm:"type:varchar(500)"`
	Description string    `json:"description,omitempty" gorm:"type:varchar(2000)"`
	Category    string    `json:"category,omitempty" gorm:"type:varchar(100);index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProductRequest is the payload for creating a product.
// Price is a pointer so a missing field can be told apart from zero.
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
}

// UpdateProductRequest is the payload for partially updating a product.
// Nil fields are left untouched; id and createdAt can never be overwritten.
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
}
