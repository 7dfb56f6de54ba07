package validation

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/simple-lms-api/internal/models"
)

var (
	emailRegex      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonWordRegex    = regexp.MustCompile(`[^\w-]+`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Slugify derives a URL-safe slug from a title: lowercase, whitespace runs
// become hyphens and any other non-word character is dropped. Slugs are not
// guaranteed to be unique.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	return nonWordRegex.ReplaceAllString(slug, "")
}

// IsValidEmail checks that the address has a local part, an @ and a dotted domain
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var emailRule = ozzo.Match(emailRegex).Error("invalid email format")

// ValidateSignup validates a self-service signup request
func ValidateSignup(name, email string, role models.Role) []ValidationError {
	return collect(ozzo.Errors{
		"name":  ozzo.Validate(name, ozzo.Required.Error("name is required")),
		"email": ozzo.Validate(email, ozzo.Required.Error("email is required"), emailRule),
		"role": ozzo.Validate(string(role),
			ozzo.Required.Error("role is required"),
			ozzo.In(string(models.RoleLearner), string(models.RoleContributor)).
				Error("role must be one of: LEARNER, CONTRIBUTOR"),
		),
	})
}

// ValidateInvite validates an admin-initiated user creation
func ValidateInvite(email string) []ValidationError {
	return collect(ozzo.Errors{
		"email": ozzo.Validate(email, ozzo.Required.Error("email is required"), emailRule),
	})
}

// ValidateLesson validates lesson input coming from an editor
func ValidateLesson(lesson *models.LessonInput) []ValidationError {
	return collect(ozzo.Errors{
		"title":    ozzo.Validate(lesson.Title, ozzo.Required.Error("title is required")),
		"duration": ozzo.Validate(lesson.Duration, ozzo.Required.Error("duration is required"), ozzo.Min(1).Error("duration must be a positive number of minutes")),
	})
}

// ValidatePost validates blog post input coming from an editor
func ValidatePost(title, content string) []ValidationError {
	return collect(ozzo.Errors{
		"title":   ozzo.Validate(title, ozzo.Required.Error("title is required")),
		"content": ozzo.Validate(content, ozzo.Required.Error("content is required")),
	})
}

// collect flattens ozzo field errors into a stable, field-ordered list
func collect(errs ozzo.Errors) []ValidationError {
	var fieldErrs ozzo.Errors
	if err := errs.Filter(); err == nil || !errors.As(err, &fieldErrs) {
		return nil
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []ValidationError
	for _, field := range fields {
		out = append(out, ValidationError{Field: field, Message: fieldErrs[field].Error()})
	}
	return out
}

var contentPolicy = bluemonday.UGCPolicy()

// SanitizeContent strips unsafe markup from user-authored post content
func SanitizeContent(content string) string {
	return contentPolicy.Sanitize(content)
}
