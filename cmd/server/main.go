package main

import (
	"time"

	"inkwell/handlers"
	"inkwell/pkg/cache"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/pkg/queue"
	"inkwell/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Inkwell API
// @version         1.0
// @description     Publishing platform: works move through an editorial review lifecycle before readers can comment and like them.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, like-count caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, notifications disabled: %v", err)
			queueClient = nil
		} else {
			defer queueClient.Close()
		}
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	userRepo := repository.NewUserRepository(db)
	workRepo := repository.NewWorkRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, jwtService, log)
	userHandler := handlers.NewUserHandler(userRepo, workRepo, draftRepo, commentRepo, log)
	workHandler := handlers.NewWorkHandler(workRepo, userRepo, likeRepo, draftRepo, commentRepo, reviewRepo, log)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, workRepo, queueClient, log)
	commentHandler := handlers.NewCommentHandler(commentRepo, workRepo, log)
	draftHandler := handlers.NewDraftHandler(draftRepo, workRepo, cfg.MaxDraftsPerWork, log)
	likeHandler := handlers.NewLikeHandler(likeRepo, workRepo, redisClient, queueClient, log)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, log)
	notificationHandler := handlers.NewNotificationHandler(redisClient, log)
	statsHandler := handlers.NewStatsHandler(workRepo, userRepo, commentRepo, categoryRepo, log)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute)) // 100 requests per minute
	}

	// Public and optionally-authenticated reads
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		public.GET("/works", workHandler.ListWorks)
		public.GET("/works/:id", workHandler.GetWork)
		public.GET("/works/:id/likes", likeHandler.GetLikes)
		public.GET("/comments", commentHandler.ListComments)
		public.GET("/comments/:id", commentHandler.GetComment)
		public.GET("/categories", categoryHandler.ListCategories)
		public.GET("/categories/:id", categoryHandler.GetCategory)
		public.GET("/users/:id", userHandler.GetUser)
		public.GET("/stats", statsHandler.GetStats)
	}

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated writes
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(jwtService))
	{
		auth.GET("/auth/me", authHandler.Me)

		auth.POST("/works", workHandler.CreateWork)
		auth.PATCH("/works/:id", workHandler.UpdateWork)
		auth.DELETE("/works/:id", workHandler.DeleteWork)
		auth.POST("/works/:id/likes", likeHandler.ToggleLike)

		auth.POST("/comments", commentHandler.CreateComment)
		auth.PATCH("/comments/:id", commentHandler.UpdateComment)
		auth.DELETE("/comments/:id", commentHandler.DeleteComment)

		auth.GET("/drafts", draftHandler.ListDrafts)
		auth.GET("/drafts/:id", draftHandler.GetDraft)
		auth.POST("/drafts", draftHandler.CreateDraft)
		auth.PATCH("/drafts/:id", draftHandler.UpdateDraft)
		auth.DELETE("/drafts/:id", draftHandler.DeleteDraft)

		auth.PATCH("/users/:id", userHandler.UpdateUser)

		auth.GET("/notifications", notificationHandler.GetNotifications)
	}

	// Editorial surface
	editorial := api.Group("/reviews")
	editorial.Use(middleware.AuthMiddleware(jwtService))
	editorial.Use(middleware.RequireRoles(models.RoleEditor, models.RoleAdmin))
	{
		editorial.GET("", reviewHandler.ListReviews)
		editorial.GET("/:id", reviewHandler.GetReview)
		editorial.POST("", reviewHandler.CreateReview)
		editorial.PATCH("/:id", reviewHandler.UpdateReview)
	}

	// Admin surface
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(jwtService))
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.DELETE("/reviews/:id", reviewHandler.DeleteReview)
		admin.DELETE("/users/:id", userHandler.DeleteUser)
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PATCH("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	}

	log.Info("Starting server on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Error("Server failed: %v", err)
		panic(err)
	}
}
