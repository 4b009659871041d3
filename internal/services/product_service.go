package services

import (
	"fmt"
	"log"

	"shopsync/internal/models"
	"shopsync/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CatalogEventPublisher publishes catalog change events. A nil publisher
// disables publishing.
type CatalogEventPublisher interface {
	PublishCatalogEvent(action string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher CatalogEventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher CatalogEventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates the payload and creates a new product. The store
// assigns the identifier and timestamps.
func (s *ProductService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid product payload: %w", err)
	}

	product := &models.Product{
		Title:       req.Title,
		Price:       *req.Price,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", map[string]interface{}{
		"id":    product.ID,
		"title": product.Title,
		"price": product.Price,
	})
	return product, nil
}

// UpdateProduct applies a partial update to an existing product. Fields left
// out of the payload keep their prior values.
func (s *ProductService) UpdateProduct(id string, req models.UpdateProductRequest) (*models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid product payload: %w", err)
	}

	product, err := s.repo.Update(id, req)
	if err != nil {
		return nil, err
	}

	s.publishEvent("product.updated", map[string]interface{}{
		"id":    product.ID,
		"title": product.Title,
		"price": product.Price,
	})
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("product.deleted", map[string]interface{}{
		"id": id,
	})
	return nil
}

// publishEvent publishes a catalog event if a publisher is configured.
// Publish failures are logged, never surfaced to the request.
func (s *ProductService) publishEvent(action string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishCatalogEvent(action, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", action, err)
	}
}
