package repositories

import (
	"errors"

	"shopsync/internal/models"
)

// ErrProductNotFound is returned when a product id does not exist in the store.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// GetAll returns products ordered by creation time, newest first.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(id string, fields models.UpdateProductRequest) (*models.Product, error)
	Delete(id string) error
}
