package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	orderControllers "github.com/solestride/storefront-api/controllers/order"
	paymentControllers "github.com/solestride/storefront-api/controllers/payment"
	productcontroller "github.com/solestride/storefront-api/controllers/product"
	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/models"
	"github.com/solestride/storefront-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Payment{},
		&models.PaymentItem{},
		&models.FlashSale{},
		&models.Coupon{},
		&models.Warranty{},
		&models.News{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	db, err := initDatabase()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	payments := paymentControllers.NewService(db, paymentControllers.LoadConfig())

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		payments.SetRedisClient(redisClient)
	}

	var pub events.PublisherInterface
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		publisher, err := events.NewPublisher(amqpURL, "orders")
		if err != nil {
			log.Printf("rabbitmq unavailable, order events disabled: %v", err)
		} else {
			defer publisher.Close()
			pub = publisher
			payments.SetPublisher(publisher)
		}
	}

	hub := orderControllers.NewHub()
	defer hub.Close()

	cache := productcontroller.NewCache(redisClient)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CLIENT_URL"), "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-KEY"},
		AllowCredentials: true,
	}))

	routes.SetupRoutes(r, db, payments, hub, cache, pub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
