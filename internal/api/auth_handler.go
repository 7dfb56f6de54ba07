package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/service"
)

// AuthHandler handles login, signup and the active session
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
}

type signupRequest struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Login handles POST /v1/auth/login
// Identity lookup only: no credential is checked.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if !h.services.Identity.Login(c.Request.Context(), req.Email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user with this email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": h.services.Identity.CurrentUser()})
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.services.Identity.Signup(c.Request.Context(), req.Name, req.Email, req.Role)
	resultResponse(c, result, http.StatusCreated)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.services.Identity.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// GetSession handles GET /v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	user := h.services.Identity.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
