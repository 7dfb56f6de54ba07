package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/service"
	"github.com/simple-lms-api/internal/session"
)

const currentUserKey = "current_user"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, gatherer prometheus.Gatherer, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	publicHandler := NewPublicHandler(services, log)
	authHandler := NewAuthHandler(services, log)
	adminHandler := NewAdminHandler(services, cfg, log)
	learnerHandler := NewLearnerHandler(services, log)
	contributorHandler := NewContributorHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services))
	router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/stats", statsHandler(services))
		v1.GET("/testimonials", publicHandler.ListTestimonials)
		v1.GET("/blogs", publicHandler.ListPublishedPosts)
		v1.GET("/blogs/:slug", publicHandler.GetPostBySlug)

		// Auth endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.GetSession)
		}

		// Admin endpoints
		admin := v1.Group("/admin", requireRole(services, models.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.GET("/audit-log", adminHandler.GetAuditLog)
			admin.GET("/courses", adminHandler.ListCourses)
			admin.GET("/courses/:course_id", adminHandler.GetCourse)
			admin.POST("/courses/:course_id/learners", adminHandler.GrantAccess)
			admin.DELETE("/courses/:course_id/learners/:user_id", adminHandler.RevokeAccess)
			admin.POST("/courses/:course_id/lessons", adminHandler.AddLesson)
			admin.PUT("/courses/:course_id/lessons/:lesson_id", adminHandler.UpdateLesson)
			admin.DELETE("/courses/:course_id/lessons/:lesson_id", adminHandler.DeleteLesson)
			admin.POST("/ai/lesson-description", adminHandler.GenerateLessonDescription)
			admin.GET("/blogs/pending", adminHandler.ListPendingPosts)
			admin.POST("/blogs/:post_id/publish", adminHandler.PublishPost)
		}

		// Learner endpoints
		learner := v1.Group("/learner", requireRole(services, models.RoleLearner))
		{
			learner.GET("/courses", learnerHandler.ListCourses)
			learner.GET("/courses/:course_id", learnerHandler.GetCourse)
			learner.POST("/courses/:course_id/lessons/:lesson_id/complete", learnerHandler.CompleteLesson)
		}

		// Contributor endpoints
		contributor := v1.Group("/contributor", requireRole(services, models.RoleContributor))
		{
			contributor.GET("/posts", contributorHandler.ListPosts)
			contributor.POST("/posts", contributorHandler.CreatePost)
			contributor.PUT("/posts/:post_id", contributorHandler.UpdatePost)
			contributor.POST("/posts/:post_id/submit", contributorHandler.SubmitPost)
		}
	}

	return router
}

// healthCheck returns the health status, including the session store when it is remote
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK

		if pinger, ok := services.Session.(session.Pinger); ok {
			ctx, cancel := contextWithTimeout(c, 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "simple-lms-api",
		})
	}
}

// statsHandler returns platform totals for the landing page
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := services.Store.Snapshot()

		roles := make(map[models.Role]int)
		for _, u := range snap.Users {
			roles[u.Role]++
		}
		lessons := 0
		for _, course := range snap.Courses {
			lessons += len(course.Lessons)
		}

		c.JSON(http.StatusOK, gin.H{
			"courses":        len(snap.Courses),
			"lessons":        lessons,
			"learners":       roles[models.RoleLearner],
			"contributors":   roles[models.RoleContributor],
			"publishedPosts": len(services.Blog.PublishedPosts()),
			"pendingPosts":   len(services.Blog.PendingPosts()),
			"timestamp":      time.Now().Format(time.RFC3339),
		})
	}
}

// requireRole rejects requests without an active session (401) or whose
// session user has a different role (403)
func requireRole(services *service.Services, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := services.Identity.CurrentUser()
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the user stored by requireRole
func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(currentUserKey).(*models.User)
	return user
}

// outcomeResponse writes the result of a mutation
func outcomeResponse(c *gin.Context, outcome models.Outcome) {
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// resultResponse writes a validated operation's Result, 400 on failure
func resultResponse(c *gin.Context, result models.Result, successStatus int) {
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(successStatus, result)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
