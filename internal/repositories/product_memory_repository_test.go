package repositories_test

import (
	"testing"
	"time"

	"shopsync/internal/models"
	"shopsync/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestMemoryProductRepository_CreateAssignsIdentity(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	first := &models.Product{Title: "Mug", Price: 9.99}
	second := &models.Product{Title: "Plate", Price: 4.99}

	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())
}

func TestMemoryProductRepository_GetAllNewestFirst(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		assert.NoError(t, repo.Create(&models.Product{Title: title, Price: 1.0}))
		time.Sleep(2 * time.Millisecond)
	}

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "Third", products[0].Title)
	assert.Equal(t, "Second", products[1].Title)
	assert.Equal(t, "First", products[2].Title)

	// Deleting one leaves the rest in order
	assert.NoError(t, repo.Delete(products[1].ID))
	products, err = repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Third", products[0].Title)
	assert.Equal(t, "First", products[1].Title)
}

func TestMemoryProductRepository_UpdateMergesFields(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := &models.Product{
		Title:       "Mug",
		Price:       9.99,
		Description: "A mug",
		Category:    "Home",
	}
	assert.NoError(t, repo.Create(product))
	createdAt := product.CreatedAt
	updatedAt := product.UpdatedAt

	time.Sleep(2 * time.Millisecond)

	updated, err := repo.Update(product.ID, models.UpdateProductRequest{
		Price: floatPtr(12.50),
	})
	assert.NoError(t, err)

	// Only the supplied field changed
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, "Mug", updated.Title)
	assert.Equal(t, "A mug", updated.Description)
	assert.Equal(t, "Home", updated.Category)

	// Identity and creation time are immutable; updatedAt moves forward
	assert.Equal(t, product.ID, updated.ID)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updatedAt))

	// Unknown id
	_, err = repo.Update("missing", models.UpdateProductRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestMemoryProductRepository_DeleteTwice(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := &models.Product{Title: "Mug", Price: 9.99}
	assert.NoError(t, repo.Create(product))

	assert.NoError(t, repo.Delete(product.ID))
	assert.ErrorIs(t, repo.Delete(product.ID), repositories.ErrProductNotFound)

	_, err := repo.GetByID(product.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestMemoryUserRepository_SetAdmin(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	assert.NoError(t, repo.Create(user))

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.False(t, got.Admin)

	assert.NoError(t, repo.SetAdmin(user.ID, true))
	got, err = repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.True(t, got.Admin)

	assert.ErrorIs(t, repo.SetAdmin("missing", true), repositories.ErrUserNotFound)

	byName, err := repo.GetByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail("alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}
