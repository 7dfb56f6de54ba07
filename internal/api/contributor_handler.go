package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/service"
	"github.com/simple-lms-api/internal/validation"
)

// ContributorHandler handles the contributor's own posts
type ContributorHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContributorHandler creates a new ContributorHandler
func NewContributorHandler(services *service.Services, log zerolog.Logger) *ContributorHandler {
	return &ContributorHandler{
		services: services,
		log:      log.With().Str("handler", "contributor").Logger(),
	}
}

type postRequest struct {
	Title         string   `json:"title"`
	CoverImageURL string   `json:"coverImageUrl"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
}

// bindPost decodes, validates and sanitizes post input, writing a 400 on failure
func bindPost(c *gin.Context) (postRequest, bool) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	if errs := validation.ValidatePost(req.Title, req.Content); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": errs,
		})
		return req, false
	}
	req.Content = validation.SanitizeContent(req.Content)
	req.Excerpt = validation.SanitizeContent(req.Excerpt)
	return req, true
}

// ownPost returns the post if it belongs to the current user, writing a 404 otherwise
func (h *ContributorHandler) ownPost(c *gin.Context) *models.BlogPost {
	post := h.services.Blog.PostByID(c.Param("post_id"))
	if post == nil || post.AuthorID != currentUser(c).ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return nil
	}
	return post
}

// ListPosts handles GET /v1/contributor/posts
func (h *ContributorHandler) ListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": h.services.Blog.PostsByAuthor(currentUser(c).ID)})
}

// CreatePost handles POST /v1/contributor/posts
func (h *ContributorHandler) CreatePost(c *gin.Context) {
	req, ok := bindPost(c)
	if !ok {
		return
	}

	user := currentUser(c)
	post := h.services.Blog.CreatePost(models.BlogPostInput{
		Title:         req.Title,
		AuthorID:      user.ID,
		AuthorName:    user.Name,
		CoverImageURL: req.CoverImageURL,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Tags:          req.Tags,
	})

	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /v1/contributor/posts/:post_id
func (h *ContributorHandler) UpdatePost(c *gin.Context) {
	post := h.ownPost(c)
	if post == nil {
		return
	}
	req, ok := bindPost(c)
	if !ok {
		return
	}

	edit := *post
	edit.Title = req.Title
	edit.CoverImageURL = req.CoverImageURL
	edit.Content = req.Content
	edit.Excerpt = req.Excerpt
	edit.Tags = req.Tags

	outcomeResponse(c, h.services.Blog.UpdatePost(edit))
}

// SubmitPost handles POST /v1/contributor/posts/:post_id/submit
func (h *ContributorHandler) SubmitPost(c *gin.Context) {
	post := h.ownPost(c)
	if post == nil {
		return
	}

	outcomeResponse(c, h.services.Blog.SubmitForReview(post.ID))
}
