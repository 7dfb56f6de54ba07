package service

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/store"
)

// accessService is the concrete implementation of AccessService
type accessService struct {
	store *store.Store
	audit *auditService
	log   zerolog.Logger
}

// newAccessService creates a new AccessService
func newAccessService(st *store.Store, audit *auditService, log zerolog.Logger) *accessService {
	return &accessService{
		store: st,
		audit: audit,
		log:   log.With().Str("service", "access").Logger(),
	}
}

// GrantAccess enrolls the user with the given email in a course. It is
// Skipped when either lookup fails or the user is already enrolled.
func (s *accessService) GrantAccess(courseID, email string) models.Outcome {
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		user := tx.UserByEmail(email)
		course := tx.CourseByID(courseID)
		if user == nil || course == nil || course.HasLearner(user.ID) {
			return
		}

		tx.ReplaceCourse(courseID, func(c models.Course) models.Course {
			c.LearnerIDs = append(slices.Clone(c.LearnerIDs), user.ID)
			return c
		})
		s.audit.record(tx, models.ActivityUserInvited,
			fmt.Sprintf("Granted %s access to %s", email, course.Title))
		outcome = models.Applied
	})

	s.log.Debug().
		Str("course_id", courseID).
		Str("email", email).
		Stringer("outcome", outcome).
		Msg("Grant access")

	return outcome
}

// RevokeAccess removes the user id from the course's learners. The removal
// does not depend on the user still existing; the audit entry does.
func (s *accessService) RevokeAccess(courseID, userID string) models.Outcome {
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		course := tx.CourseByID(courseID)
		user := tx.UserByID(userID)

		if course != nil && course.HasLearner(userID) {
			tx.ReplaceCourse(courseID, func(c models.Course) models.Course {
				c.LearnerIDs = slices.DeleteFunc(slices.Clone(c.LearnerIDs), func(id string) bool {
					return id == userID
				})
				return c
			})
			outcome = models.Applied
		}

		if course != nil && user != nil {
			s.audit.record(tx, models.ActivityUserAccessRevoked,
				fmt.Sprintf("Revoked access for %s from %s", user.Email, course.Title))
		}
	})

	s.log.Debug().
		Str("course_id", courseID).
		Str("user_id", userID).
		Stringer("outcome", outcome).
		Msg("Revoke access")

	return outcome
}

// Courses returns every course in store order
func (s *accessService) Courses() []*models.Course {
	return slices.Clone(s.store.Snapshot().Courses)
}

// CourseByID returns the course or nil
func (s *accessService) CourseByID(id string) *models.Course {
	return s.store.Snapshot().CourseByID(id)
}

// LearnerCourses returns the courses the learner is enrolled in
func (s *accessService) LearnerCourses(learnerID string) []*models.Course {
	return s.store.Snapshot().FindCourses(func(c *models.Course) bool {
		return c.HasLearner(learnerID)
	})
}
