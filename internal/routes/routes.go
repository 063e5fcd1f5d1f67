package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notedesk/internal/handlers"
	"notedesk/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	noteHandler *handlers.NoteHandler,
) *gin.Engine {

	// ---- public
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-code", authHandler.VerifyCode)
		auth.POST("/resend-code", authHandler.ResendCode)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.GET("/auth/me", authHandler.Me)

	notes := r.Group("/notes")
	{
		notes.POST("", noteHandler.Create)
		notes.GET("", noteHandler.List)
		notes.GET("/:id", noteHandler.Get)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	users := r.Group("/users")
	{
		users.GET("/count", userHandler.GetUserCount)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return r
}
