package server

import (
	"errors"
	"log"
	"time"

	"collabspace/internal/handlers"
	"collabspace/internal/repositories"
	"collabspace/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the application built by New.
type Options struct {
	DB               *gorm.DB
	Publisher        services.EventPublisher // nil disables collaboration events
	BcryptCost       int
	CORSAllowOrigins string
	DisableLogger    bool
}

// New wires repositories, services and handlers onto a Fiber app.
func New(opts Options) *fiber.App {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.CORSAllowOrigins == "" {
		opts.CORSAllowOrigins = "*"
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(opts.DB)
	spaceRepo := repositories.NewGORMSpaceRepository(opts.DB)
	collabRepo := repositories.NewGORMCollaborationRepository(opts.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, opts.BcryptCost)
	spaceService := services.NewSpaceService(spaceRepo)
	collabService := services.NewCollaborationService(collabRepo, spaceRepo, opts.Publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	spaceHandler := handlers.NewSpaceHandler(spaceService)
	collabHandler := handlers.NewCollaborationHandler(collabService)

	app := fiber.New(fiber.Config{
		AppName:      "collabspace",
		ErrorHandler: errorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if !opts.DisableLogger {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Email",
	}))

	app.Get("/health", healthHandler(opts.DB))

	authHandler.RegisterRoutes(app)
	spaceHandler.RegisterRoutes(app)
	collabHandler.RegisterRoutes(app)

	return app
}

// errorHandler renders errors that escape a handler, such as unknown routes
// or recovered panics, in the same {"detail": ...} shape handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, detail = fe.Code, fe.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database := "healthy", "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, database = "degraded", "down"
		}
		return c.JSON(fiber.Map{
			"status":   status,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
