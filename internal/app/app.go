package app

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"feed-backend/internal/db"
	"feed-backend/internal/handlers"
	"feed-backend/internal/models"
	"feed-backend/internal/services"
	"feed-backend/internal/storage"
	"feed-backend/internal/store"
	"feed-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Init DB
	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "feeddb") + "?sslmode=disable"
	}

	pool, err := db.Connect(context.Background(), connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Upload storage
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads")
	files, err := storage.NewFileStore(uploadDir, utils.GetEnv("BASE_URL", ""))
	if err != nil {
		log.Fatalf("Failed to init file store: %v", err)
	}

	// Store and services
	pg := store.NewPostgresStore(pool)
	userService := services.NewUserService(pg)
	postService := services.NewPostService(pg, files)
	commentService := services.NewCommentService(pg, pg)
	likeService := services.NewLikeService(pg, pg)

	// Fiber App
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Serve uploaded files
	app.Static("/uploads", files.Dir())

	// Routes
	api := app.Group("/api")

	// Public Routes
	api.Post("/register", func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Username == "" || req.Password == "" {
			return c.Status(400).JSON(fiber.Map{"error": "username and password required"})
		}
		user, err := userService.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, store.ErrUserExists) {
				return c.Status(400).JSON(fiber.Map{"error": "username already exists"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(user)
	})

	api.Post("/login", func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		res, err := userService.Login(c.Context(), req)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(res)
	})

	// Public reads
	api.Get("/posts/", handlers.ListPostsHandler(postService))
	api.Get("/comments/post/:post_id", handlers.ListCommentsHandler(commentService))
	api.Get("/likes/:post_id/count", handlers.CountLikesHandler(likeService))

	// Protected Routes
	protected := api.Group("/")
	protected.Use(handlers.AuthMiddleware)

	protected.Get("/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		user, err := userService.Me(c.Context(), userID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch profile"})
		}
		return c.JSON(user)
	})

	// Posts
	protected.Post("/posts/", handlers.CreatePostHandler(postService))
	protected.Put("/posts/:post_id", handlers.UpdatePostHandler(postService))
	protected.Delete("/posts/:post_id", handlers.DeletePostHandler(postService))

	// Comments
	protected.Post("/comments/post/:post_id", handlers.CreateCommentHandler(commentService))
	protected.Put("/comments/:comment_id", handlers.UpdateCommentHandler(commentService))
	protected.Delete("/comments/:comment_id", handlers.DeleteCommentHandler(commentService))

	// Likes
	protected.Post("/likes/:post_id", handlers.ToggleLikeHandler(likeService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Start Server
	port := utils.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
