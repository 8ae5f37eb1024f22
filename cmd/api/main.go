package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, cfg)
	handlers := handler.NewHandlers(services)

	services.Cleanup.Start()
	defer services.Cleanup.Stop()
	defer services.Visit.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Use(middleware.RequestInfo())
	app.Use(middleware.Visitor())

	setupRoutes(app, handlers, services, cfg)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/login",
		middleware.RateLimit(services.Limiter, "login", cfg.LoginRateLimit, cfg.LoginRateWindow),
		h.Auth.Login)

	articles := v1.Group("/articles")
	articles.Get("/", h.Article.List)
	articles.Get("/:id", h.Article.Get)
	articles.Get("/:id/comments", h.Comment.GetTree)
	articles.Post("/:id/comments",
		middleware.RateLimit(services.Limiter, "comment", cfg.CommentRateLimit, cfg.CommentRateWindow),
		h.Comment.Create)

	messages := v1.Group("/messages")
	messages.Get("/", h.Message.List)
	messages.Post("/",
		middleware.RateLimit(services.Limiter, "message", cfg.MessageRateLimit, cfg.MessageRateWindow),
		h.Message.Create)

	admin := v1.Group("/admin", middleware.AuthRequired(services.Auth))
	admin.Post("/articles", h.Article.Create)
	admin.Delete("/articles/:id", h.Article.Delete)
	admin.Get("/comments", h.Comment.ListForAdmin)
	admin.Patch("/comments/:commentId", h.Comment.Moderate)
	admin.Delete("/comments/:commentId", h.Comment.Delete)
	admin.Delete("/messages/:messageId", h.Message.Delete)
}
