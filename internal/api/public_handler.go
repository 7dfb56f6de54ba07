package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/service"
)

// PublicHandler serves the unauthenticated read endpoints
type PublicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(services *service.Services, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		services: services,
		log:      log.With().Str("handler", "public").Logger(),
	}
}

// ListTestimonials handles GET /v1/testimonials
func (h *PublicHandler) ListTestimonials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"testimonials": h.services.Store.Snapshot().Testimonials})
}

// ListPublishedPosts handles GET /v1/blogs
func (h *PublicHandler) ListPublishedPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": h.services.Blog.PublishedPosts()})
}

// GetPostBySlug handles GET /v1/blogs/:slug
// The first post with the slug is returned whatever its status.
func (h *PublicHandler) GetPostBySlug(c *gin.Context) {
	post := h.services.Blog.PostBySlug(c.Param("slug"))
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":   post,
		"author": h.services.Store.Snapshot().UserByID(post.AuthorID),
	})
}
