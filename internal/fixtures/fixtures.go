// Package fixtures provides the static seed data the store starts from.
package fixtures

import (
	"fmt"
	"time"

	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/store"
)

// Seed returns the full seed snapshot for a new store
func Seed(now time.Time) store.Snapshot {
	return store.Snapshot{
		Users:        Users(),
		Courses:      Courses(),
		Posts:        BlogPosts(),
		AuditLog:     AuditLog(now),
		Testimonials: Testimonials(),
	}
}

func avatar(email string) string {
	return "https://i.pravatar.cc/150?u=" + email
}

// Users returns the seed users
func Users() []*models.User {
	return []*models.User{
		{ID: "user-1", Name: "Admin User", Email: "admin@lms.com", Role: models.RoleAdmin, Bio: "Manages the SimpleLMS platform.", AvatarURL: avatar("admin@lms.com")},
		{ID: "user-2", Name: "Alice", Email: "alice@learner.com", Role: models.RoleLearner, AvatarURL: avatar("alice@learner.com")},
		{ID: "user-3", Name: "Bob", Email: "bob@learner.com", Role: models.RoleLearner, AvatarURL: avatar("bob@learner.com")},
		{ID: "user-4", Name: "Charlie", Email: "charlie@learner.com", Role: models.RoleLearner, AvatarURL: avatar("charlie@learner.com")},
		{ID: "user-5", Name: "Diana", Email: "diana@contributor.com", Role: models.RoleContributor, Bio: "A passionate UI/UX designer and writer, sharing insights on design thinking and user-centric strategies.", AvatarURL: avatar("diana@contributor.com")},
	}
}

func designLessons() []models.Lesson {
	lessons := make([]models.Lesson, 0, 11)
	for n := 1; n <= 11; n++ {
		lessons = append(lessons, models.Lesson{
			ID:          fmt.Sprintf("lesson-%d", n),
			Title:       fmt.Sprintf("Lesson %d: Introduction to Design Thinking", n),
			Description: fmt.Sprintf("This is the description for Lesson %d. It covers the fundamental concepts of design thinking and user-centric design. We will explore various case studies.", n),
			Duration:    10 + (n*7)%20,
			VideoURL:    "https://picsum.photos/1280/720",
			Attachments: []models.Attachment{
				{ID: fmt.Sprintf("attach-%d-1", n), Name: fmt.Sprintf("Lesson %d Worksheet.pdf", n), Kind: models.AttachmentPDF, URL: "#"},
				{ID: fmt.Sprintf("attach-%d-2", n), Name: fmt.Sprintf("Design Principles %d.png", n), Kind: models.AttachmentImage, URL: "#"},
			},
		})
	}
	return lessons
}

// Courses returns the seed courses
func Courses() []*models.Course {
	return []*models.Course{
		{
			ID:          "course-1",
			Title:       "UI/UX Design Masterclass",
			Description: "A comprehensive course covering the fundamentals of UI/UX design, from user research to high-fidelity prototyping.",
			Lessons:     designLessons(),
			LearnerIDs:  []string{"user-2", "user-3"},
		},
		{
			ID:          "course-2",
			Title:       "React for Beginners",
			Description: "Learn the basics of React and build your first web application.",
			Lessons:     []models.Lesson{},
			LearnerIDs:  []string{"user-2"},
		},
	}
}

// AuditLog returns the seed audit entries, newest first
func AuditLog(now time.Time) []*models.AuditLogEntry {
	return []*models.AuditLogEntry{
		{ID: "log-1", Timestamp: now, Activity: models.ActivityUserInvited, Details: "Invited alice@learner.com to UI/UX Design Masterclass"},
		{ID: "log-2", Timestamp: now, Activity: models.ActivityLessonUpdated, Details: `Updated "Lesson 1" in UI/UX Design Masterclass`},
		{ID: "log-3", Timestamp: now, Activity: models.ActivityCourseCreated, Details: `Created course "React for Beginners"`},
	}
}

func date(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

const principlesContent = `
# The Principles of Good UI Design
Great UI design is not just about aesthetics; it's about creating an experience that is seamless, intuitive, and enjoyable for the user. Here are some core principles that guide effective UI design...

## 1. Clarity
Clarity is the most important principle. The user should be able to understand the interface and its purpose at a glance. Avoid ambiguity and make everything clear and concise.

## 2. Consistency
A consistent design allows users to develop usage patterns. Consistency in navigation, terminology, and layout helps users learn the interface faster and reduces confusion.

## 3. Feedback
The interface should provide feedback for every user action. This can be a visual cue, a sound, or a message that confirms the action was successful or indicates an error.
`

// BlogPosts returns the seed blog posts
func BlogPosts() []*models.BlogPost {
	return []*models.BlogPost{
		{
			ID:            "blog-1",
			Title:         "The Principles of Good UI Design",
			Slug:          "principles-of-good-ui-design",
			AuthorID:      "user-5",
			AuthorName:    "Diana",
			CoverImageURL: "https://images.unsplash.com/photo-1551288049-bebda4e38f71?q=80&w=2070&auto=format&fit=crop",
			Content:       principlesContent,
			Excerpt:       "Great UI design is not just about aesthetics; it's about creating an experience that is seamless, intuitive, and enjoyable for the user. Here are some core principles...",
			Tags:          []string{"UI Design", "Principles", "User Experience"},
			Status:        models.BlogStatusPublished,
			CreatedAt:     date("2023-10-26T10:00:00Z"),
			PublishedAt:   datePtr("2023-10-27T10:00:00Z"),
		},
		{
			ID:            "blog-2",
			Title:         "Mastering User Research for Better Products",
			Slug:          "mastering-user-research",
			AuthorID:      "user-5",
			AuthorName:    "Diana",
			CoverImageURL: "https://images.unsplash.com/photo-1454165804606-c3d57bc86b40?q=80&w=2070&auto=format&fit=crop",
			Content:       "User research is the cornerstone of successful product design. This post dives deep into methods like user interviews, surveys, and usability testing...",
			Excerpt:       "User research is the cornerstone of successful product design. This post dives deep into methods like user interviews, surveys, and usability testing...",
			Tags:          []string{"User Research", "UX", "Product Design"},
			Status:        models.BlogStatusPublished,
			CreatedAt:     date("2023-11-05T10:00:00Z"),
			PublishedAt:   datePtr("2023-11-06T10:00:00Z"),
		},
		{
			ID:            "blog-3",
			Title:         "The Art of Prototyping",
			Slug:          "the-art-of-prototyping",
			AuthorID:      "user-5",
			AuthorName:    "Diana",
			CoverImageURL: "https://images.unsplash.com/photo-1581291518857-4e27b48ff24e?q=80&w=2070&auto=format&fit=crop",
			Content:       "From low-fidelity wireframes to high-fidelity interactive mockups, prototyping is a crucial step in the design process. Learn how to choose the right tools and techniques.",
			Excerpt:       "From low-fidelity wireframes to high-fidelity interactive mockups, prototyping is a crucial step in the design process. Learn how to choose the right tools...",
			Tags:          []string{"Prototyping", "Design Process", "Tools"},
			Status:        models.BlogStatusPending,
			CreatedAt:     date("2023-11-10T10:00:00Z"),
		},
		{
			ID:            "blog-4",
			Title:         "My First Draft Post",
			Slug:          "my-first-draft-post",
			AuthorID:      "user-5",
			AuthorName:    "Diana",
			CoverImageURL: "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?q=80&w=2070&auto=format&fit=crop",
			Content:       "This is a draft and should not be visible to the public yet.",
			Excerpt:       "This is a draft and should not be visible to the public yet.",
			Tags:          []string{"Drafting"},
			Status:        models.BlogStatusDraft,
			CreatedAt:     date("2023-11-12T10:00:00Z"),
		},
	}
}

// Testimonials returns the seed testimonials
func Testimonials() []*models.Testimonial {
	return []*models.Testimonial{
		{ID: "t-1", Quote: "This platform has been a game-changer for my design career. The courses are practical and the community is incredibly supportive.", AuthorName: "Alice", AuthorRole: "Learner"},
		{ID: "t-2", Quote: "I love being able to share my knowledge with aspiring designers. The contribution process is straightforward and rewarding.", AuthorName: "Diana", AuthorRole: "Contributor"},
		{ID: "t-3", Quote: "The best place to learn and grow as a designer. The content is top-notch and always up-to-date.", AuthorName: "Charlie", AuthorRole: "Learner"},
	}
}
