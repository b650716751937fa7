package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/online-bookstore/internal/config"
	"github.com/iliyamo/online-bookstore/internal/database"
	"github.com/iliyamo/online-bookstore/internal/handler"
	"github.com/iliyamo/online-bookstore/internal/queue"
	"github.com/iliyamo/online-bookstore/internal/repository"
	"github.com/iliyamo/online-bookstore/internal/router"
	queue_publisher "github.com/iliyamo/online-bookstore/internal/service"
	"github.com/iliyamo/online-bookstore/internal/storage"
)

func main() {
	// .env is optional; production injects the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	rl := config.LoadRateLimit()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil && rl.Enabled {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	bookRepo := repository.NewBookRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	contactRepo := repository.NewContactRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	bookH := handler.NewBookHandler(bookRepo, store)
	userH := handler.NewUserHandler(userRepo)
	cartH := handler.NewCartHandler(cartRepo)
	orderH := handler.NewOrderHandler(orderRepo, paymentRepo, cartRepo, bookRepo)
	contactH := handler.NewContactHandler(contactRepo)

	if cfg.AmqpURL != "" {
		orderH.Publish = func(ctx context.Context, event queue.OrderPlacedEvent) error {
			return queue_publisher.PublishOrderPlaced(ctx, cfg.AmqpURL, event)
		}
	}

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Uploaded covers and the browser client.
	e.Static("/uploads", store.Dir())
	e.Static("/", "web")

	router.Register(e, cfg, rl, rdb, authH, bookH, userH, cartH, orderH, contactH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
