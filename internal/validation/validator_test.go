package validation

import (
	"strings"
	"testing"

	"github.com/simple-lms-api/internal/models"
)

func fieldsOf(errs []ValidationError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func equalFields(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My First Post!", "my-first-post"},
		{"The Art of Prototyping", "the-art-of-prototyping"},
		{"  Leading and trailing  ", "-leading-and-trailing-"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"C++ & Go: a comparison", "c--go-a-comparison"},
		{"snake_case stays", "snake_case-stays"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@learner.com", true},
		{"a@b.c", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"no-at-sign.com", false},
		{"user@nodot", false},
		{"has space@example.com", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.valid {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name       string
		user       string
		email      string
		role       models.Role
		wantFields []string
	}{
		{"valid learner", "Eve", "eve@example.com", models.RoleLearner, nil},
		{"valid contributor", "Eve", "eve@example.com", models.RoleContributor, nil},
		{"missing name", "", "eve@example.com", models.RoleLearner, []string{"name"}},
		{"invalid email", "Eve", "eve", models.RoleLearner, []string{"email"}},
		{"admin role not allowed", "Eve", "eve@example.com", models.RoleAdmin, []string{"role"}},
		{"unknown role", "Eve", "eve@example.com", models.Role("GUEST"), []string{"role"}},
		{"everything missing", "", "", "", []string{"email", "name", "role"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSignup(tt.user, tt.email, tt.role)
			if got := fieldsOf(errs); !equalFields(got, tt.wantFields) {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidateInvite(t *testing.T) {
	if errs := ValidateInvite("new@learner.com"); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	errs := ValidateInvite("not-an-email")
	if len(errs) != 1 || errs[0].Field != "email" {
		t.Fatalf("expected one email error, got %v", errs)
	}
	if errs[0].Message != "invalid email format" {
		t.Errorf("unexpected message %q", errs[0].Message)
	}
}

func TestValidateLesson(t *testing.T) {
	tests := []struct {
		name       string
		lesson     models.LessonInput
		wantFields []string
	}{
		{"valid", models.LessonInput{Title: "Intro", Duration: 10}, nil},
		{"missing title", models.LessonInput{Duration: 10}, []string{"title"}},
		{"zero duration", models.LessonInput{Title: "Intro"}, []string{"duration"}},
		{"negative duration", models.LessonInput{Title: "Intro", Duration: -5}, []string{"duration"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLesson(&tt.lesson)
			if got := fieldsOf(errs); !equalFields(got, tt.wantFields) {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidatePost(t *testing.T) {
	if errs := ValidatePost("Title", "Body"); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if got := fieldsOf(ValidatePost("", "")); !equalFields(got, []string{"content", "title"}) {
		t.Errorf("fields = %v", got)
	}
}

func TestSanitizeContent(t *testing.T) {
	in := `<p>Hello <b>world</b></p><script>alert("x")</script><a href="javascript:alert(1)">link</a>`
	out := SanitizeContent(in)

	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived: %s", out)
	}
	if strings.Contains(out, "javascript:") {
		t.Errorf("javascript url survived: %s", out)
	}
	if !strings.Contains(out, "<b>world</b>") {
		t.Errorf("safe markup was removed: %s", out)
	}
}
