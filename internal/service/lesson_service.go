package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/store"
)

// lessonService is the concrete implementation of LessonService
type lessonService struct {
	store *store.Store
	audit *auditService
	now   func() time.Time
	log   zerolog.Logger
}

// newLessonService creates a new LessonService
func newLessonService(st *store.Store, audit *auditService, now func() time.Time, log zerolog.Logger) *lessonService {
	return &lessonService{
		store: st,
		audit: audit,
		now:   now,
		log:   log.With().Str("service", "lesson").Logger(),
	}
}

// AddLesson appends a new lesson to the end of the course
func (s *lessonService) AddLesson(courseID string, input models.LessonInput) (models.Lesson, models.Outcome) {
	lesson := models.Lesson{
		ID:          "lesson-" + uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		VideoURL:    input.VideoURL,
		Attachments: slices.Clone(input.Attachments),
	}
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		course := tx.CourseByID(courseID)
		if course == nil {
			return
		}
		tx.ReplaceCourse(courseID, func(c models.Course) models.Course {
			c.Lessons = append(slices.Clone(c.Lessons), lesson)
			return c
		})
		s.audit.record(tx, models.ActivityLessonCreated,
			fmt.Sprintf(`Created lesson "%s" in %s`, lesson.Title, course.Title))
		outcome = models.Applied
	})

	return lesson, outcome
}

// UpdateLesson replaces the lesson with the same id, keeping its position.
// The audit entry is written whenever the course exists, even if no lesson
// matched.
func (s *lessonService) UpdateLesson(courseID string, lesson models.Lesson) models.Outcome {
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		course := tx.CourseByID(courseID)
		if course == nil {
			return
		}
		if idx := course.LessonIndex(lesson.ID); idx >= 0 {
			tx.ReplaceCourse(courseID, func(c models.Course) models.Course {
				lessons := slices.Clone(c.Lessons)
				lessons[idx] = lesson
				c.Lessons = lessons
				return c
			})
			outcome = models.Applied
		}
		s.audit.record(tx, models.ActivityLessonUpdated,
			fmt.Sprintf(`Updated lesson "%s" in %s`, lesson.Title, course.Title))
	})

	if !outcome.Applied() {
		s.log.Debug().Str("course_id", courseID).Str("lesson_id", lesson.ID).Msg("No lesson matched update")
	}
	return outcome
}

// DeleteLesson removes the lesson, preserving the order of the rest
func (s *lessonService) DeleteLesson(courseID, lessonID string) models.Outcome {
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		course := tx.CourseByID(courseID)
		if course == nil {
			return
		}
		idx := course.LessonIndex(lessonID)
		if idx < 0 {
			return
		}
		title := course.Lessons[idx].Title
		tx.ReplaceCourse(courseID, func(c models.Course) models.Course {
			c.Lessons = slices.Delete(slices.Clone(c.Lessons), idx, idx+1)
			return c
		})
		s.audit.record(tx, models.ActivityLessonDeleted,
			fmt.Sprintf(`Deleted lesson "%s" from %s`, title, course.Title))
		outcome = models.Applied
	})

	return outcome
}

// MarkLessonComplete records that an enrolled learner finished a lesson
func (s *lessonService) MarkLessonComplete(userID, courseID, lessonID string) models.Outcome {
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		course := tx.CourseByID(courseID)
		if course == nil || !course.HasLearner(userID) || course.LessonIndex(lessonID) < 0 {
			return
		}
		for _, c := range tx.CompletionsFor(userID, courseID) {
			if c.LessonID == lessonID {
				return
			}
		}
		tx.AddCompletion(&models.LessonCompletion{
			UserID:      userID,
			CourseID:    courseID,
			LessonID:    lessonID,
			CompletedAt: s.now(),
		})
		outcome = models.Applied
	})

	return outcome
}

// Progress reports how many of the course's current lessons the user completed
func (s *lessonService) Progress(userID, courseID string) models.CourseProgress {
	snap := s.store.Snapshot()
	progress := models.CourseProgress{CourseID: courseID, CompletedLessonIDs: []string{}}

	course := snap.CourseByID(courseID)
	if course == nil {
		return progress
	}

	done := make(map[string]bool)
	for _, c := range snap.CompletionsFor(userID, courseID) {
		done[c.LessonID] = true
	}
	for _, l := range course.Lessons {
		if done[l.ID] {
			progress.CompletedLessonIDs = append(progress.CompletedLessonIDs, l.ID)
		}
	}

	progress.Total = len(course.Lessons)
	progress.Completed = len(progress.CompletedLessonIDs)
	if progress.Total > 0 {
		progress.Percent = float64(progress.Completed) / float64(progress.Total) * 100
	}
	return progress
}
