package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"collabspace/internal/config"
	"collabspace/internal/database"
	"collabspace/internal/server"
	"collabspace/internal/services"
	"collabspace/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// A failed migration is logged but does not stop startup.
	if err := database.Migrate(db); err != nil {
		log.Printf("Error while creating tables: %v", err)
	} else {
		log.Println("Database migrated successfully.")
	}

	// --- Collaboration events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, collaboration events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
			if err := mqClient.ConsumeCollaborationEvents(rabbitmq.LogCollaborationEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	app := server.New(server.Options{
		DB:               db,
		Publisher:        publisher,
		BcryptCost:       cfg.BcryptCost,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

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
