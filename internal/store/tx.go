package store

import (
	"github.com/simple-lms-api/internal/models"
)

// Tx is the working copy handed to Store.Update. Reads see earlier writes of
// the same Tx. Replace callbacks receive a copy of the entity whose slices are
// still shared with the published snapshot; they must build new slices rather
// than modify them in place.
type Tx struct {
	*Snapshot
	dirty bool
}

// InsertUser appends a user
func (tx *Tx) InsertUser(user *models.User) {
	users := make([]*models.User, len(tx.Users), len(tx.Users)+1)
	copy(users, tx.Users)
	tx.Users = append(users, user)
	tx.dirty = true
}

// ReplaceCourse replaces the course with the given id by the result of fn.
// It reports whether a course matched.
func (tx *Tx) ReplaceCourse(id string, fn func(c models.Course) models.Course) bool {
	for i, c := range tx.Courses {
		if c.ID != id {
			continue
		}
		updated := fn(*c)
		courses := make([]*models.Course, len(tx.Courses))
		copy(courses, tx.Courses)
		courses[i] = &updated
		tx.Courses = courses
		tx.dirty = true
		return true
	}
	return false
}

// PrependPost inserts a post at the front of the collection
func (tx *Tx) PrependPost(post *models.BlogPost) {
	posts := make([]*models.BlogPost, 0, len(tx.Posts)+1)
	posts = append(posts, post)
	tx.Posts = append(posts, tx.Posts...)
	tx.dirty = true
}

// ReplacePost replaces the post with the given id by the result of fn.
// It reports whether a post matched.
func (tx *Tx) ReplacePost(id string, fn func(p models.BlogPost) models.BlogPost) bool {
	for i, p := range tx.Posts {
		if p.ID != id {
			continue
		}
		updated := fn(*p)
		posts := make([]*models.BlogPost, len(tx.Posts))
		copy(posts, tx.Posts)
		posts[i] = &updated
		tx.Posts = posts
		tx.dirty = true
		return true
	}
	return false
}

// PrependAudit inserts an entry at the front of the audit log and keeps at
// most limit entries.
func (tx *Tx) PrependAudit(entry *models.AuditLogEntry, limit int) {
	if limit < 1 {
		limit = 1
	}
	n := len(tx.AuditLog) + 1
	if n > limit {
		n = limit
	}
	log := make([]*models.AuditLogEntry, 0, n)
	log = append(log, entry)
	for _, e := range tx.AuditLog {
		if len(log) == n {
			break
		}
		log = append(log, e)
	}
	tx.AuditLog = log
	tx.dirty = true
}

// AddCompletion appends a lesson completion
func (tx *Tx) AddCompletion(completion *models.LessonCompletion) {
	completions := make([]*models.LessonCompletion, len(tx.Completions), len(tx.Completions)+1)
	copy(completions, tx.Completions)
	tx.Completions = append(completions, completion)
	tx.dirty = true
}
