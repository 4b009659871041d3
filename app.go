package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"shopsync/internal/handlers"
	"shopsync/internal/middleware"
	"shopsync/internal/models"
	"shopsync/internal/repositories"
	"shopsync/internal/services"
)

// NewApp builds the Fiber application. There is one set of routes; the
// authenticated and auth-skipped variants differ only in the injected gate.
func NewApp(
	productService *services.ProductService,
	authService *services.AuthService,
	gate middleware.Gate,
	allowedOrigin string,
) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigin,
	}))

	api := app.Group("/api")

	productHandler := handlers.NewProductHandler(productService)
	productHandler.RegisterRoutes(api, gate)

	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterRoutes(api, gate)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// seedDemoProducts populates the local-mode store with the demo catalog.
func seedDemoProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{
			Title:       "Wireless Headphones",
			Price:       79.99,
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300",
			Description: "High-quality wireless headphones with noise cancellation",
			Category:    "Electronics",
		},
		{
			Title:       "Running Shoes",
			Price:       129.99,
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300",
			Description: "Comfortable running shoes for all terrains",
			Category:    "Sports",
		},
		{
			Title:       "Coffee Maker",
			Price:       49.99,
			Image:       "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=300",
			Description: "Automatic drip coffee maker, 12-cup capacity",
			Category:    "Home",
		},
		{
			Title:       "Backpack",
			Price:       59.99,
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300",
			Description: "Water-resistant laptop backpack with USB charging port",
			Category:    "Accessories",
		},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Title, err)
		}
	}
}
