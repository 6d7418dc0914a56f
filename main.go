package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/backend/internal/config"
	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/middleware"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/monitoring"
	"taskhub/backend/internal/services"
	"taskhub/backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	if err := db.AutoMigrate(&models.User{}, &models.Task{}, &models.Comment{}, &models.Notification{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("Database synchronized")

	store, err := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	router := buildRouter(cfg, db, store)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server is running on %s", cfg.GetServerAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Database.Driver == "postgres" {
		dialector = postgres.Open(cfg.GetDatabaseDSN())
	} else {
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func buildRouter(cfg *config.Config, db *gorm.DB, store *storage.DiskStore) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := services.NewAuthService(cfg.Auth)
	notificationService := services.NewNotificationService()
	taskService := services.NewTaskService(notificationService, store)
	commentService := services.NewCommentService(notificationService)

	authHandler := handlers.NewAuthHandler(db, authService)
	taskHandler := handlers.NewTaskHandler(db, taskService)
	commentHandler := handlers.NewCommentHandler(db, commentService)
	notificationHandler := handlers.NewNotificationHandler(db, notificationService)

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.Default())
	router.Use(middleware.RateLimit(cfg.RateLimit, newClientLimiter(cfg)))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Task Management API is running!"})
	})
	router.GET("/health", monitoring.HealthHandler(db))
	router.GET("/metrics", monitoring.MetricsHandler())
	router.Static("/uploads", store.Dir())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authed := api.Group("")
		authed.Use(middleware.Authenticate(db, authService))
		{
			authed.GET("/tasks", taskHandler.GetTasks)
			authed.POST("/tasks", taskHandler.CreateTask)
			authed.GET("/tasks/:id", taskHandler.GetTask)
			authed.PUT("/tasks/:id", taskHandler.UpdateTask)
			authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
			authed.POST("/tasks/:id/upload", taskHandler.UploadAttachment)

			authed.GET("/comments/:taskId/comments", commentHandler.GetComments)
			authed.POST("/comments/:taskId/comments", commentHandler.CreateComment)

			authed.GET("/notifications", notificationHandler.GetNotifications)
			authed.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		}
	}

	return router
}

func newClientLimiter(cfg *config.Config) middleware.ClientLimiter {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		return middleware.NewRedisLimiter(client, cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Window)
	}
	return middleware.NewLocalLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize)
}
