package models

import (
	"time"
)

// ActivityType is the closed set of audited activities
type ActivityType string

const (
	ActivityUserInvited       ActivityType = "User Invited"
	ActivityUserAccessRevoked ActivityType = "User Access Revoked"
	ActivityLessonCreated     ActivityType = "Lesson Created"
	ActivityLessonUpdated     ActivityType = "Lesson Updated"
	ActivityLessonDeleted     ActivityType = "Lesson Deleted"
	ActivityCourseCreated     ActivityType = "Course Created"
	ActivityCourseUpdated     ActivityType = "Course Updated"
	ActivityBlogPostSubmitted ActivityType = "Blog Post Submitted"
	ActivityBlogPostPublished ActivityType = "Blog Post Published"
	ActivityUserCreated       ActivityType = "User Created"
)

// AuditLogLimit is the number of entries the audit log retains
const AuditLogLimit = 20

// AuditLogEntry is an immutable record of a state-changing action
type AuditLogEntry struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Activity  ActivityType `json:"activity"`
	Details   string       `json:"details"`
}
