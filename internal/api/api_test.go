package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/api"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/fixtures"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/mocks"
	"github.com/simple-lms-api/internal/service"
	"github.com/simple-lms-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	services  *service.Services
	generator *mocks.MockGenerator
}

func setupTestRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	generator := mocks.NewMockGenerator()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		AI:     config.AIConfig{Timeout: 5 * time.Second},
	}

	st := store.New(fixtures.Seed(time.Now()), log)
	services := service.NewServices(st, mocks.NewMockPersister(), generator, cfg, collector, log)

	return &testServer{
		router:    api.NewRouter(services, cfg, registry, log),
		services:  services,
		generator: generator,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email string) {
	t.Helper()
	w := s.do(t, "POST", "/v1/auth/login", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHealthEndpoint(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "simple-lms-api", response["service"])
}

func TestHealthEndpoint_SessionStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()
	cfg := &config.Config{}

	persister := mocks.NewMockRemotePersister()
	persister.PingError = errors.New("connection refused")

	st := store.New(fixtures.Seed(time.Now()), log)
	services := service.NewServices(st, persister, mocks.NewMockGenerator(), cfg, metrics.Nop{}, log)
	router := api.NewRouter(services, cfg, prometheus.NewRegistry(), log)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decode(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "admin@lms.com")

	w := s.do(t, "GET", "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `lms_login_total{result="success"} 1`)
}

func TestStatsEndpoint(t *testing.T) {
	s := setupTestRouter(t)

	response := decode(t, s.do(t, "GET", "/v1/stats", nil))

	assert.Equal(t, float64(2), response["courses"])
	assert.Equal(t, float64(11), response["lessons"])
	assert.Equal(t, float64(3), response["learners"])
	assert.Equal(t, float64(2), response["publishedPosts"])
	assert.Equal(t, float64(1), response["pendingPosts"])
}

func TestRoleGating(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "GET", "/v1/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.login(t, "alice@learner.com")

	w = s.do(t, "GET", "/v1/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, "GET", "/v1/contributor/posts", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, "GET", "/v1/learner/courses", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "POST", "/v1/auth/login", map[string]string{"email": "nobody@lms.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, "GET", "/v1/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupAndLogout(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "POST", "/v1/auth/signup", map[string]string{
		"name": "Eve", "email": "eve@example.com", "role": "LEARNER",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Account created successfully!", decode(t, w)["message"])

	w = s.do(t, "GET", "/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "eve@example.com", user["email"])

	w = s.do(t, "POST", "/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, s.services.Identity.CurrentUser())
}

func TestSignupValidationFailure(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "POST", "/v1/auth/signup", map[string]string{
		"name": "Alice", "email": "alice@learner.com", "role": "LEARNER",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "A user with this email already exists.", response["message"])
}

func TestAdminGrantAndRevoke(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "admin@lms.com")

	w := s.do(t, "POST", "/v1/admin/courses/course-1/learners", map[string]string{"email": "charlie@learner.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "applied", decode(t, w)["outcome"])

	w = s.do(t, "POST", "/v1/admin/courses/course-1/learners", map[string]string{"email": "charlie@learner.com"})
	assert.Equal(t, "skipped", decode(t, w)["outcome"])

	w = s.do(t, "DELETE", "/v1/admin/courses/course-1/learners/user-4", nil)
	assert.Equal(t, "applied", decode(t, w)["outcome"])

	w = s.do(t, "GET", "/v1/admin/audit-log", nil)
	entries := decode(t, w)["entries"].([]interface{})
	require.Len(t, entries, 5)
	newest := entries[0].(map[string]interface{})
	assert.Equal(t, "Revoked access for charlie@learner.com from UI/UX Design Masterclass", newest["details"])
}

func TestAdminCreateUser(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "admin@lms.com")

	w := s.do(t, "POST", "/v1/admin/users", map[string]string{"email": "grace@learner.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Successfully created user for grace@learner.com.", decode(t, w)["message"])

	w = s.do(t, "POST", "/v1/admin/users", map[string]string{"email": "grace"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid email address.", decode(t, w)["message"])

	users := decode(t, s.do(t, "GET", "/v1/admin/users", nil))["users"].([]interface{})
	assert.Len(t, users, 6)
}

func TestAdminLessons(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "admin@lms.com")

	w := s.do(t, "POST", "/v1/admin/courses/course-2/lessons", map[string]interface{}{"title": "", "duration": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation failed", decode(t, w)["error"])

	w = s.do(t, "POST", "/v1/admin/courses/course-2/lessons", map[string]interface{}{"title": "JSX", "duration": 12})
	require.Equal(t, http.StatusCreated, w.Code)
	lesson := decode(t, w)["lesson"].(map[string]interface{})
	lessonID := lesson["id"].(string)

	w = s.do(t, "PUT", "/v1/admin/courses/course-2/lessons/"+lessonID, map[string]interface{}{"title": "JSX in depth", "duration": 20})
	assert.Equal(t, "applied", decode(t, w)["outcome"])

	course := s.services.Access.CourseByID("course-2")
	require.Len(t, course.Lessons, 1)
	assert.Equal(t, "JSX in depth", course.Lessons[0].Title)

	w = s.do(t, "DELETE", "/v1/admin/courses/course-2/lessons/"+lessonID, nil)
	assert.Equal(t, "applied", decode(t, w)["outcome"])
	assert.Empty(t, s.services.Access.CourseByID("course-2").Lessons)

	w = s.do(t, "GET", "/v1/admin/courses/course-9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminGenerateDescription(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "admin@lms.com")

	w := s.do(t, "POST", "/v1/admin/ai/lesson-description", map[string]string{"title": "Color Theory"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Generated description for Color Theory", decode(t, w)["description"])
	assert.Equal(t, []string{"Color Theory"}, s.generator.Titles)

	w = s.do(t, "POST", "/v1/admin/ai/lesson-description", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLearnerProgress(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "bob@learner.com")

	courses := decode(t, s.do(t, "GET", "/v1/learner/courses", nil))["courses"].([]interface{})
	require.Len(t, courses, 1)

	w := s.do(t, "POST", "/v1/learner/courses/course-1/lessons/lesson-1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "applied", response["outcome"])
	progress := response["progress"].(map[string]interface{})
	assert.Equal(t, float64(1), progress["completed"])
	assert.Equal(t, float64(11), progress["total"])

	w = s.do(t, "GET", "/v1/learner/courses/course-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContributorWorkflow(t *testing.T) {
	s := setupTestRouter(t)
	s.login(t, "diana@contributor.com")

	w := s.do(t, "POST", "/v1/contributor/posts", map[string]interface{}{
		"title":   "Color in Interfaces",
		"content": `<p>Use color with care.</p><script>alert(1)</script>`,
		"excerpt": "Use color with care.",
		"tags":    []string{"Color"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	post := decode(t, w)
	postID := post["id"].(string)
	assert.Equal(t, "color-in-interfaces", post["slug"])
	assert.Equal(t, "draft", post["status"])
	assert.False(t, strings.Contains(post["content"].(string), "<script"))

	w = s.do(t, "POST", "/v1/contributor/posts/"+postID+"/submit", nil)
	assert.Equal(t, "applied", decode(t, w)["outcome"])

	s.login(t, "admin@lms.com")
	pending := decode(t, s.do(t, "GET", "/v1/admin/blogs/pending", nil))["posts"].([]interface{})
	require.Len(t, pending, 2)

	w = s.do(t, "POST", "/v1/admin/blogs/"+postID+"/publish", nil)
	assert.Equal(t, "applied", decode(t, w)["outcome"])

	published := decode(t, s.do(t, "GET", "/v1/blogs", nil))["posts"].([]interface{})
	require.Len(t, published, 3)
	assert.Equal(t, postID, published[0].(map[string]interface{})["id"])

	w = s.do(t, "GET", "/v1/blogs/color-in-interfaces", nil)
	require.Equal(t, http.StatusOK, w.Code)
	author := decode(t, w)["author"].(map[string]interface{})
	assert.Equal(t, "Diana", author["name"])
}

func TestContributorCannotEditOthersPosts(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "POST", "/v1/auth/signup", map[string]string{
		"name": "Hank", "email": "hank@contributor.com", "role": "CONTRIBUTOR",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, "PUT", "/v1/contributor/posts/blog-4", map[string]interface{}{"title": "Hijacked", "content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "POST", "/v1/contributor/posts/blog-4/submit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, "My First Draft Post", s.services.Blog.PostByID("blog-4").Title)
}

func TestPublicTestimonials(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, "GET", "/v1/testimonials", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["testimonials"].([]interface{}), 3)
}
