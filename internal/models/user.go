package models

// Role represents the access role of a user. It is fixed at creation time.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleLearner     Role = "LEARNER"
	RoleContributor Role = "CONTRIBUTOR"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleAdmin:       true,
	RoleLearner:     true,
	RoleContributor: true,
}

// SignupRoles defines the roles available to self-service signup
var SignupRoles = map[Role]bool{
	RoleLearner:     true,
	RoleContributor: true,
}

// User represents a user in the system
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Testimonial is read-only marketing reference data
type Testimonial struct {
	ID         string `json:"id"`
	Quote      string `json:"quote"`
	AuthorName string `json:"authorName"`
	AuthorRole string `json:"authorRole"`
}
