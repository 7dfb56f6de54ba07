// Package store holds the canonical in-memory collections of the LMS.
//
// Every write replaces the touched collection with a new slice and publishes a
// new Snapshot; entities reachable from a published Snapshot are never modified
// in place. Callers must treat returned entities as read-only.
package store

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
)

// Snapshot is an immutable view of every collection at one point in time
type Snapshot struct {
	Version      uint64
	Users        []*models.User
	Courses      []*models.Course
	Posts        []*models.BlogPost
	AuditLog     []*models.AuditLogEntry
	Testimonials []*models.Testimonial
	Completions  []*models.LessonCompletion
}

// Store owns the current Snapshot and serializes updates
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	log     zerolog.Logger
}

// New creates a store seeded with the given collections
func New(seed Snapshot, log zerolog.Logger) *Store {
	snap := seed
	s := &Store{
		current: &snap,
		log:     log.With().Str("component", "store").Logger(),
	}

	s.log.Info().
		Int("users", len(snap.Users)).
		Int("courses", len(snap.Courses)).
		Int("posts", len(snap.Posts)).
		Msg("Store seeded")

	return s
}

// Snapshot returns the current snapshot
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update runs fn against a working copy of the current snapshot. If fn wrote
// anything, the copy is published as the new current snapshot. Updates never
// interleave. The snapshot current after the update is returned.
func (s *Store) Update(fn func(tx *Tx)) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := *s.current
	tx := &Tx{Snapshot: &working}
	fn(tx)

	if tx.dirty {
		working.Version = s.current.Version + 1
		s.current = &working
		s.log.Debug().Uint64("version", working.Version).Msg("Snapshot published")
	}
	return s.current
}

func find[T any](items []*T, pred func(*T) bool) *T {
	for _, item := range items {
		if pred(item) {
			return item
		}
	}
	return nil
}

func filter[T any](items []*T, pred func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// FindUser returns the first user matching pred
func (s *Snapshot) FindUser(pred func(*models.User) bool) *models.User {
	return find(s.Users, pred)
}

// UserByID returns the user with the given id, or nil
func (s *Snapshot) UserByID(id string) *models.User {
	return s.FindUser(func(u *models.User) bool { return u.ID == id })
}

// UserByEmail returns the user whose email matches exactly, or nil
func (s *Snapshot) UserByEmail(email string) *models.User {
	return s.FindUser(func(u *models.User) bool { return u.Email == email })
}

// UserByEmailFold returns the user whose email matches ignoring case, or nil
func (s *Snapshot) UserByEmailFold(email string) *models.User {
	return s.FindUser(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

// CourseByID returns the course with the given id, or nil
func (s *Snapshot) CourseByID(id string) *models.Course {
	return find(s.Courses, func(c *models.Course) bool { return c.ID == id })
}

// FindCourses returns all courses matching pred in store order
func (s *Snapshot) FindCourses(pred func(*models.Course) bool) []*models.Course {
	return filter(s.Courses, pred)
}

// PostByID returns the post with the given id, or nil
func (s *Snapshot) PostByID(id string) *models.BlogPost {
	return find(s.Posts, func(p *models.BlogPost) bool { return p.ID == id })
}

// PostBySlug returns the first post with the given slug, or nil
func (s *Snapshot) PostBySlug(slug string) *models.BlogPost {
	return find(s.Posts, func(p *models.BlogPost) bool { return p.Slug == slug })
}

// FindPosts returns all posts matching pred in store order
func (s *Snapshot) FindPosts(pred func(*models.BlogPost) bool) []*models.BlogPost {
	return filter(s.Posts, pred)
}

// CompletionsFor returns the lesson completions of a user within a course
func (s *Snapshot) CompletionsFor(userID, courseID string) []*models.LessonCompletion {
	return filter(s.Completions, func(c *models.LessonCompletion) bool {
		return c.UserID == userID && c.CourseID == courseID
	})
}
