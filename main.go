package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"maison/internal/handlers"
	"maison/internal/middleware"
	"maison/internal/models"
	"maison/internal/repositories"
	"maison/internal/services"
	"maison/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "maison.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := openDatabase(databaseURL, viper.GetString("SQLITE_PATH"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional; order events are skipped without it) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; order events disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	seedProducts(productRepo)

	// --- Services ---
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, mqClient)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	api := app.Group("/api")

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	// Public: auth, catalog listing and detail
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, authRequired, adminRequired)

	// Authenticated: cart and orders
	protected := api.Group("", authRequired)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected, adminRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Fulfillment consumer ---
	// Listens for order lifecycle events. The real fulfillment pipeline
	// lives elsewhere; this consumer just drains and logs the queue.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
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

// openDatabase connects to Postgres when DATABASE_URL is set and falls
// back to a local SQLite file otherwise.
func openDatabase(databaseURL, sqlitePath string) (*gorm.DB, error) {
	if databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	}
	log.Printf("DATABASE_URL not set; using SQLite at %s", sqlitePath)
	return gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
}

// seedProducts populates an empty catalog with a starter collection.
func seedProducts(repo repositories.ProductRepository) {
	existing, err := repo.List(repositories.ProductFilter{})
	if err != nil || len(existing) > 0 {
		return
	}

	log.Println("Seeding products...")
	products := []models.Product{
		{
			Title:       "Handcrafted Gold Signet Ring",
			Description: "A timeless 18k gold plated signet ring with a polished finish. Perfect for everyday luxury.",
			Price:       "199.00",
			Category:    "Jewelry",
			Images:      []string{"https://images.unsplash.com/photo-1611085583191-a3b158466d0b"},
			Sizes:       []string{"6", "7", "8"},
			Colors:      []string{"Gold"},
			Stock:       50,
			IsFeatured:  true,
			Tags:        []string{"gold", "minimal", "luxury"},
		},
		{
			Title:       "Sculptural Cuff Bracelet",
			Description: "Elegant and bold, this sculptural gold cuff adds a statement to any ensemble.",
			Price:       "145.00",
			Category:    "Jewelry",
			Images:      []string{"https://images.unsplash.com/photo-1573408301185-9146fe634ad0"},
			Sizes:       []string{"One Size"},
			Colors:      []string{"Gold"},
			Stock:       30,
			IsFeatured:  true,
			Tags:        []string{"bracelet", "gold"},
		},
		{
			Title:       "Minimalist Silk Slip Dress",
			Description: "Pure silk midi dress in a classic champagne hue. Elegant drape and effortless style.",
			Price:       "245.00",
			Category:    "Dresses",
			Images:      []string{"https://images.unsplash.com/photo-1595777457583-95e059d581b8"},
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Champagne", "Black"},
			Stock:       25,
			IsFeatured:  true,
			Tags:        []string{"silk", "premium"},
		},
		{
			Title:       "Tailored Linen Trousers",
			Description: "Wide-leg trousers crafted from premium Italian linen.",
			Price:       "180.00",
			Category:    "Bottoms",
			Images:      []string{"https://images.unsplash.com/photo-1594633312681-425c7b97ccd1"},
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Sand", "Black"},
			Stock:       40,
			IsFeatured:  false,
			Tags:        []string{"linen", "tailored"},
		},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Title, err)
		}
	}
}
