package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/service"
	"github.com/simple-lms-api/internal/validation"
)

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

type generateRequest struct {
	Title string `json:"title" binding:"required"`
}

// ListUsers handles GET /v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.services.Identity.Users()})
}

// CreateUser handles POST /v1/admin/users
// Creates a learner named after the email's local part.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.services.Identity.CreateUserByAdmin(req.Email)
	resultResponse(c, result, http.StatusCreated)
}

// GetAuditLog handles GET /v1/admin/audit-log
func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.services.Audit.Entries()})
}

// ListCourses handles GET /v1/admin/courses
func (h *AdminHandler) ListCourses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"courses": h.services.Access.Courses()})
}

// GetCourse handles GET /v1/admin/courses/:course_id
func (h *AdminHandler) GetCourse(c *gin.Context) {
	course := h.services.Access.CourseByID(c.Param("course_id"))
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// GrantAccess handles POST /v1/admin/courses/:course_id/learners
func (h *AdminHandler) GrantAccess(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcomeResponse(c, h.services.Access.GrantAccess(c.Param("course_id"), req.Email))
}

// RevokeAccess handles DELETE /v1/admin/courses/:course_id/learners/:user_id
func (h *AdminHandler) RevokeAccess(c *gin.Context) {
	outcomeResponse(c, h.services.Access.RevokeAccess(c.Param("course_id"), c.Param("user_id")))
}

// bindLesson decodes and validates lesson input, writing a 400 on failure
func bindLesson(c *gin.Context) (models.LessonInput, bool) {
	var input models.LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return input, false
	}
	if errs := validation.ValidateLesson(&input); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": errs,
		})
		return input, false
	}
	return input, true
}

// AddLesson handles POST /v1/admin/courses/:course_id/lessons
func (h *AdminHandler) AddLesson(c *gin.Context) {
	input, ok := bindLesson(c)
	if !ok {
		return
	}

	lesson, outcome := h.services.Lesson.AddLesson(c.Param("course_id"), input)
	if !outcome.Applied() {
		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"outcome": outcome, "lesson": lesson})
}

// UpdateLesson handles PUT /v1/admin/courses/:course_id/lessons/:lesson_id
func (h *AdminHandler) UpdateLesson(c *gin.Context) {
	input, ok := bindLesson(c)
	if !ok {
		return
	}

	lesson := models.Lesson{
		ID:          c.Param("lesson_id"),
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		VideoURL:    input.VideoURL,
		Attachments: input.Attachments,
	}
	outcomeResponse(c, h.services.Lesson.UpdateLesson(c.Param("course_id"), lesson))
}

// DeleteLesson handles DELETE /v1/admin/courses/:course_id/lessons/:lesson_id
func (h *AdminHandler) DeleteLesson(c *gin.Context) {
	outcomeResponse(c, h.services.Lesson.DeleteLesson(c.Param("course_id"), c.Param("lesson_id")))
}

// GenerateLessonDescription handles POST /v1/admin/ai/lesson-description
// The generator never fails; errors surface as placeholder text.
func (h *AdminHandler) GenerateLessonDescription(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	ctx := c.Request.Context()
	if h.cfg.AI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = contextWithTimeout(c, h.cfg.AI.Timeout)
		defer cancel()
	}

	description := h.services.AI.GenerateLessonDescription(ctx, req.Title)
	c.JSON(http.StatusOK, gin.H{"description": description})
}

// ListPendingPosts handles GET /v1/admin/blogs/pending
func (h *AdminHandler) ListPendingPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": h.services.Blog.PendingPosts()})
}

// PublishPost handles POST /v1/admin/blogs/:post_id/publish
func (h *AdminHandler) PublishPost(c *gin.Context) {
	outcomeResponse(c, h.services.Blog.PublishPost(c.Param("post_id")))
}
