package models

import (
	"time"
)

// AttachmentKind represents the type of a lesson attachment
type AttachmentKind string

const (
	AttachmentPDF   AttachmentKind = "pdf"
	AttachmentImage AttachmentKind = "image"
	AttachmentFile  AttachmentKind = "file"
)

// Attachment is a downloadable resource attached to a lesson
type Attachment struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Kind AttachmentKind `json:"type"`
	URL  string         `json:"url"`
}

// Lesson represents a single lesson inside a course
type Lesson struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    int          `json:"duration"` // in minutes
	VideoURL    string       `json:"videoUrl"`
	Attachments []Attachment `json:"attachments"`
}

// LessonInput carries the fields of a lesson that does not have an id yet
type LessonInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    int          `json:"duration"`
	VideoURL    string       `json:"videoUrl"`
	Attachments []Attachment `json:"attachments"`
}

// Course represents a course with its ordered lessons and enrolled learners.
// LearnerIDs may reference users that no longer exist.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons"`
	LearnerIDs  []string `json:"learnerIds"`
}

// HasLearner reports whether the user id is enrolled in the course
func (c *Course) HasLearner(userID string) bool {
	for _, id := range c.LearnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LessonIndex returns the position of the lesson with the given id, or -1
func (c *Course) LessonIndex(lessonID string) int {
	for i := range c.Lessons {
		if c.Lessons[i].ID == lessonID {
			return i
		}
	}
	return -1
}

// LessonCompletion records that a learner finished a lesson
type LessonCompletion struct {
	UserID      string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	LessonID    string    `json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
}

// CourseProgress summarizes a learner's completion of a course
type CourseProgress struct {
	CourseID           string   `json:"courseId"`
	Completed          int      `json:"completed"`
	Total              int      `json:"total"`
	Percent            float64  `json:"percent"`
	CompletedLessonIDs []string `json:"completedLessonIds"`
}
