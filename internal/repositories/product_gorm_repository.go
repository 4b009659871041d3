package repositories

import (
	"errors"
	"fmt"

	"shopsync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database, newest first.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database. The store assigns the ID and
// both timestamps.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies a partial update to an existing product. Only non-nil fields
// are changed; ID and CreatedAt are never touched and UpdatedAt is refreshed.
func (r *GORMProductRepository) Update(id string, fields models.UpdateProductRequest) (*models.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		product.Title = *fields.Title
	}
	if fields.Price != nil {
		product.Price = *fields.Price
	}
	if fields.Image != nil {
		product.Image = *fields.Image
	}
	if fields.Description != nil {
		product.Description = *fields.Description
	}
	if fields.Category != nil {
		product.Category = *fields.Category
	}

	if err := r.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return product, nil
}

// Delete removes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
