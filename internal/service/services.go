package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/ai"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/session"
	"github.com/simple-lms-api/internal/store"
)

// AuditService defines the interface for the bounded activity log
type AuditService interface {
	Record(activity models.ActivityType, details string)
	Entries() []*models.AuditLogEntry
}

// AccessService defines the interface for course enrollment
type AccessService interface {
	GrantAccess(courseID, email string) models.Outcome
	RevokeAccess(courseID, userID string) models.Outcome
	Courses() []*models.Course
	CourseByID(id string) *models.Course
	LearnerCourses(learnerID string) []*models.Course
}

// LessonService defines the interface for lesson management and learner progress
type LessonService interface {
	AddLesson(courseID string, input models.LessonInput) (models.Lesson, models.Outcome)
	UpdateLesson(courseID string, lesson models.Lesson) models.Outcome
	DeleteLesson(courseID, lessonID string) models.Outcome
	MarkLessonComplete(userID, courseID, lessonID string) models.Outcome
	Progress(userID, courseID string) models.CourseProgress
}

// IdentityService defines the interface for users and the active session.
// Login is an identity lookup only; there is no credential check.
type IdentityService interface {
	CreateUser(name, email string, role models.Role) models.Result
	CreateUserByAdmin(email string) models.Result
	Signup(ctx context.Context, name, email string, role models.Role) models.Result
	Login(ctx context.Context, email string) bool
	Logout(ctx context.Context)
	CurrentUser() *models.User
	Bootstrap(ctx context.Context)
	SerializeSession(user *models.User) ([]byte, error)
	RestoreSession(data []byte) (*models.User, error)
	Users() []*models.User
}

// BlogService defines the interface for the draft → pending → published workflow
type BlogService interface {
	CreatePost(input models.BlogPostInput) *models.BlogPost
	UpdatePost(post models.BlogPost) models.Outcome
	SubmitForReview(postID string) models.Outcome
	PublishPost(postID string) models.Outcome
	PublishedPosts() []*models.BlogPost
	PendingPosts() []*models.BlogPost
	PostsByAuthor(authorID string) []*models.BlogPost
	PostBySlug(slug string) *models.BlogPost
	PostByID(id string) *models.BlogPost
}

// Services holds all service interfaces
type Services struct {
	Store    *store.Store
	Session  session.Persister
	Audit    AuditService
	Access   AccessService
	Lesson   LessonService
	Identity IdentityService
	Blog     BlogService
	AI       ai.Generator
}

// Option customizes NewServices
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewServices creates all services around a single store
func NewServices(
	st *store.Store,
	persister session.Persister,
	generator ai.Generator,
	cfg *config.Config,
	recorder metrics.Recorder,
	log zerolog.Logger,
	opts ...Option,
) *Services {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	auditSvc := newAuditService(st, o.now, recorder, log)

	return &Services{
		Store:    st,
		Session:  persister,
		Audit:    auditSvc,
		Access:   newAccessService(st, auditSvc, log),
		Lesson:   newLessonService(st, auditSvc, o.now, log),
		Identity: newIdentityService(st, auditSvc, persister, cfg.Auth.LoginLatency, recorder, log),
		Blog:     newBlogService(st, auditSvc, o.now, log),
		AI:       generator,
	}
}
