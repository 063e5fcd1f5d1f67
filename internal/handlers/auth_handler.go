package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"notedesk/internal/middleware"
	"notedesk/internal/models"
	"notedesk/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
	tokenTTL time.Duration
}

func NewAuthHandler(accounts services.AccountService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokenTTL: tokenTTL}
}

// @Summary      Register a new user
// @Description  Creates an account; a welcome email is sent in the background
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("[auth][register] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully. Please login to verify your account.",
		"user":    user,
	})
}

// @Summary      Login
// @Description  Checks the password and emails a one-time code; no token is issued yet
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      429    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.accounts.Login(req.Email, req.Password); err != nil {
		h.respondAccountError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "A one-time password (OTP) has been sent to your email address. Please check your mail and follow the instructions to complete the process.",
	})
}

// @Summary      Verify the login code
// @Description  Consumes the emailed OTP and returns an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verify  body      object{email=string,code=string}  true  "Email and code"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      410     {object}  map[string]string
// @Router       /auth/verify-code [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.VerifyLogin(req.Email, req.Code)
	if err != nil {
		h.respondAccountError(c, "verify", err)
		return
	}

	token, err := middleware.NewAccessToken(user.ID, h.tokenTTL)
	if err != nil {
		log.Printf("[auth][verify] sign access token failed for userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         user,
		"access_token": token,
	})
}

// @Summary      Resend the login code
// @Description  Issues a fresh OTP, subject to the attempt lockout
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        resend  body      object{email=string}  true  "Email"
// @Success      200     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      429     {object}  map[string]string
// @Router       /auth/resend-code [post]
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ResendCode(req.Email); err != nil {
		h.respondAccountError(c, "resend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "A new code has been sent to your email address."})
}

// @Summary      Request a password-reset link
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      object{email=string}  true  "Email"
// @Success      200     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      429     {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ForgotPassword(req.Email); err != nil {
		h.respondAccountError(c, "forgot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link sent successfully"})
}

// @Summary      Reset the password via an emailed link
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      object{request_id=string,password=string,confirm_password=string}  true  "Reset data"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      410    {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		RequestID       string `json:"request_id" binding:"required"`
		Password        string `json:"password" binding:"required,min=6"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ResetPassword(req.RequestID, req.Password, req.ConfirmPassword); err != nil {
		h.respondAccountError(c, "reset", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// @Summary      Current user
// @Security     BearerAuth
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	user, err := h.accounts.CurrentUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// respondAccountError maps each service error kind to its own status so
// clients can distinguish them.
func (h *AuthHandler) respondAccountError(c *gin.Context, op string, err error) {
	var tooMany *services.TooManyAttemptsError
	switch {
	case errors.As(err, &tooMany):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": tooMany.Error()})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrResetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCodeExpired), errors.Is(err, services.ErrResetExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCodeInvalid), errors.Is(err, services.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrPasswordNotSet):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConcurrentReissue):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[auth][%s] failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
