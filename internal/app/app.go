package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"notedesk/internal/config"
	"notedesk/internal/handlers"
	"notedesk/internal/middleware"
	"notedesk/internal/repositories"
	"notedesk/internal/routes"
	"notedesk/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "notedesk/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	middleware.SetSigningKey([]byte(cfg.Auth.JWTSecret))

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	recordRepo := repositories.NewThrottledRecordRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	otpService := services.NewOTPService(recordRepo, authService)
	resetService := services.NewResetRequestService(recordRepo)
	accountService := services.NewAccountService(
		userRepo,
		otpService,
		resetService,
		emailService,
		authService,
		cfg.Auth.ResetLinkBase,
		time.Duration(cfg.Auth.ResetTTLMinutes)*time.Minute,
	)
	userService := services.NewUserService(userRepo)
	noteService := services.NewNoteService(noteRepo, userRepo)

	// === Handlers ===
	tokenTTL := time.Duration(cfg.Auth.AccessTokenTTL) * time.Minute
	authHandler := handlers.NewAuthHandler(accountService, tokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	noteHandler := handlers.NewNoteHandler(noteService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, userHandler, noteHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
