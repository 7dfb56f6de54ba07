package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/service"
)

// LearnerHandler handles the learner course viewer endpoints
type LearnerHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewLearnerHandler creates a new LearnerHandler
func NewLearnerHandler(services *service.Services, log zerolog.Logger) *LearnerHandler {
	return &LearnerHandler{
		services: services,
		log:      log.With().Str("handler", "learner").Logger(),
	}
}

type learnerCourse struct {
	*models.Course
	Progress models.CourseProgress `json:"progress"`
}

// ListCourses handles GET /v1/learner/courses
func (h *LearnerHandler) ListCourses(c *gin.Context) {
	user := currentUser(c)

	courses := h.services.Access.LearnerCourses(user.ID)
	out := make([]learnerCourse, 0, len(courses))
	for _, course := range courses {
		out = append(out, learnerCourse{
			Course:   course,
			Progress: h.services.Lesson.Progress(user.ID, course.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"courses": out})
}

// GetCourse handles GET /v1/learner/courses/:course_id
// Courses the learner is not enrolled in are reported as not found.
func (h *LearnerHandler) GetCourse(c *gin.Context) {
	user := currentUser(c)

	course := h.services.Access.CourseByID(c.Param("course_id"))
	if course == nil || !course.HasLearner(user.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	c.JSON(http.StatusOK, learnerCourse{
		Course:   course,
		Progress: h.services.Lesson.Progress(user.ID, course.ID),
	})
}

// CompleteLesson handles POST /v1/learner/courses/:course_id/lessons/:lesson_id/complete
func (h *LearnerHandler) CompleteLesson(c *gin.Context) {
	user := currentUser(c)
	courseID := c.Param("course_id")

	outcome := h.services.Lesson.MarkLessonComplete(user.ID, courseID, c.Param("lesson_id"))
	c.JSON(http.StatusOK, gin.H{
		"outcome":  outcome,
		"progress": h.services.Lesson.Progress(user.ID, courseID),
	})
}
