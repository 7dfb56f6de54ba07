package models

import (
	"time"
)

// BlogStatus represents the lifecycle state of a blog post
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPending   BlogStatus = "pending"
	BlogStatusPublished BlogStatus = "published"
)

// ValidStatuses defines allowed blog post statuses
var ValidStatuses = map[BlogStatus]bool{
	BlogStatusDraft:     true,
	BlogStatusPending:   true,
	BlogStatusPublished: true,
}

// BlogPost represents a contributor-authored post.
// AuthorID and AuthorName are a snapshot of the author taken at creation time.
type BlogPost struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	AuthorID      string     `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	CoverImageURL string     `json:"coverImageUrl"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Tags          []string   `json:"tags"`
	Status        BlogStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

// BlogPostInput carries the caller-supplied fields of a new post
type BlogPostInput struct {
	Title         string   `json:"title"`
	AuthorID      string   `json:"authorId"`
	AuthorName    string   `json:"authorName"`
	CoverImageURL string   `json:"coverImageUrl"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
}
