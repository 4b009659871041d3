package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopsync/internal/config"
	"shopsync/internal/middleware"
	"shopsync/internal/models"
	"shopsync/internal/repositories"
	"shopsync/internal/services"
	"shopsync/pkg/events"
)

func main() {
	cfg := config.Load()

	var (
		productRepo repositories.ProductRepository
		userRepo    repositories.UserRepository
		gate        middleware.Gate
	)

	if cfg.LocalMode {
		// Local development: in-memory storage, authentication disabled.
		log.Println("LOCAL_MODE enabled: using in-memory storage, authentication is disabled")
		memRepo := repositories.NewMemoryProductRepository()
		seedDemoProducts(memRepo)
		productRepo = memRepo
		userRepo = repositories.NewMemoryUserRepository()
		gate = middleware.NewAllowAllGate()
	} else {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	}

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	if gate == nil {
		gate = middleware.NewAuthGate(authService)
	}

	// Catalog events are optional; without a broker URL the service runs
	// with publishing disabled.
	var publisher services.CatalogEventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := events.NewClient(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		go func() {
			log.Println("Starting catalog events consumer...")
			if err := mqClient.ConsumeCatalogEvents(handleCatalogEvent); err != nil {
				log.Printf("Failed to start catalog events consumer: %v", err)
			}
		}()
	}

	productService := services.NewProductService(productRepo, publisher)

	app := NewApp(productService, authService, gate, cfg.AllowedOrigin)

	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// handleCatalogEvent processes a catalog event delivery. Other systems would
// react to the change here (cache invalidation, search reindexing); this
// service only records it. Returning nil acknowledges the message.
func handleCatalogEvent(msg amqp.Delivery) error {
	log.Printf("Received catalog event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
	return nil
}
