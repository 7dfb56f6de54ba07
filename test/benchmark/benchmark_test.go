package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/fixtures"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/mocks"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/service"
	"github.com/simple-lms-api/internal/store"
	"github.com/simple-lms-api/internal/validation"
)

func newServices() *service.Services {
	log := zerolog.Nop()
	st := store.New(fixtures.Seed(time.Now()), log)
	return service.NewServices(st, mocks.NewMockPersister(), mocks.NewMockGenerator(), &config.Config{}, metrics.Nop{}, log)
}

// BenchmarkCreateUser benchmarks signup with a growing user collection
func BenchmarkCreateUser(b *testing.B) {
	services := newServices()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		services.Identity.CreateUser("Bench User", fmt.Sprintf("user%06d@bench.com", i), models.RoleLearner)
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "users/sec")
}

// BenchmarkAuditRecord benchmarks the bounded audit log
func BenchmarkAuditRecord(b *testing.B) {
	services := newServices()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		services.Audit.Record(models.ActivityCourseUpdated, "benchmark entry")
	}
}

// BenchmarkLessonLifecycle benchmarks add, update and delete on one course
func BenchmarkLessonLifecycle(b *testing.B) {
	services := newServices()
	input := models.LessonInput{Title: "Bench lesson", Duration: 10}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		lesson, _ := services.Lesson.AddLesson("course-1", input)
		lesson.Title = "Bench lesson, revised"
		services.Lesson.UpdateLesson("course-1", lesson)
		services.Lesson.DeleteLesson("course-1", lesson.ID)
	}
}

// BenchmarkPublishedPosts benchmarks the sorted public listing
func BenchmarkPublishedPosts(b *testing.B) {
	services := newServices()
	for i := 0; i < 500; i++ {
		post := services.Blog.CreatePost(models.BlogPostInput{Title: fmt.Sprintf("Post %d", i), AuthorID: "user-5"})
		services.Blog.PublishPost(post.ID)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		services.Blog.PublishedPosts()
	}
}

// BenchmarkLogin benchmarks the identity lookup without simulated latency
func BenchmarkLogin(b *testing.B) {
	services := newServices()
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		services.Identity.Login(ctx, "charlie@learner.com")
	}
}

// BenchmarkSlugify benchmarks slug derivation
func BenchmarkSlugify(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		validation.Slugify("The Principles of Good UI Design: A Practical Guide!")
	}
}

// BenchmarkSanitizeContent benchmarks blog content sanitization
func BenchmarkSanitizeContent(b *testing.B) {
	content := `<h1>Title</h1><p>Some <b>bold</b> text with a <a href="https://example.com">link</a>.</p><script>alert(1)</script>`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.SanitizeContent(content)
	}
}
