package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/store"
	"github.com/simple-lms-api/internal/validation"
)

// blogService is the concrete implementation of BlogService.
// Status transitions are unguarded: submit and publish apply from any state.
type blogService struct {
	store *store.Store
	audit *auditService
	now   func() time.Time
	log   zerolog.Logger
}

// newBlogService creates a new BlogService
func newBlogService(st *store.Store, audit *auditService, now func() time.Time, log zerolog.Logger) *blogService {
	return &blogService{
		store: st,
		audit: audit,
		now:   now,
		log:   log.With().Str("service", "blog").Logger(),
	}
}

// CreatePost adds a new draft at the front of the collection
func (s *blogService) CreatePost(input models.BlogPostInput) *models.BlogPost {
	post := &models.BlogPost{
		ID:            "blog-" + uuid.New().String(),
		Title:         input.Title,
		Slug:          validation.Slugify(input.Title),
		AuthorID:      input.AuthorID,
		AuthorName:    input.AuthorName,
		CoverImageURL: input.CoverImageURL,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Tags:          slices.Clone(input.Tags),
		Status:        models.BlogStatusDraft,
		CreatedAt:     s.now(),
	}

	s.store.Update(func(tx *store.Tx) {
		tx.PrependPost(post)
	})

	s.log.Info().
		Str("post_id", post.ID).
		Str("author_id", post.AuthorID).
		Str("slug", post.Slug).
		Msg("Draft created")

	return post
}

// UpdatePost replaces the stored post with the given one, matched by id.
// Only the slug is derived, from the new title.
func (s *blogService) UpdatePost(post models.BlogPost) models.Outcome {
	post.Slug = validation.Slugify(post.Title)
	post.Tags = slices.Clone(post.Tags)
	if post.PublishedAt != nil {
		stamp := *post.PublishedAt
		post.PublishedAt = &stamp
	}

	var matched bool
	s.store.Update(func(tx *store.Tx) {
		matched = tx.ReplacePost(post.ID, func(models.BlogPost) models.BlogPost {
			return post
		})
	})

	if !matched {
		return models.Skipped
	}
	return models.Applied
}

// SubmitForReview moves a post to pending
func (s *blogService) SubmitForReview(postID string) models.Outcome {
	return s.transition(postID, models.ActivityBlogPostSubmitted, func(p *models.BlogPost) {
		p.Status = models.BlogStatusPending
	}, `Blog post "%s" submitted for review.`)
}

// PublishPost moves a post to published and stamps the publish time
func (s *blogService) PublishPost(postID string) models.Outcome {
	return s.transition(postID, models.ActivityBlogPostPublished, func(p *models.BlogPost) {
		stamp := s.now()
		p.Status = models.BlogStatusPublished
		p.PublishedAt = &stamp
	}, `Blog post "%s" was published.`)
}

func (s *blogService) transition(postID string, activity models.ActivityType, apply func(p *models.BlogPost), detail string) models.Outcome {
	outcome := models.Skipped

	s.store.Update(func(tx *store.Tx) {
		var title string
		matched := tx.ReplacePost(postID, func(p models.BlogPost) models.BlogPost {
			apply(&p)
			title = p.Title
			return p
		})
		if !matched {
			return
		}
		s.audit.record(tx, activity, fmt.Sprintf(detail, title))
		outcome = models.Applied
	})

	return outcome
}

// PublishedPosts returns published posts, most recently published first.
// Posts without a publish time sort last.
func (s *blogService) PublishedPosts() []*models.BlogPost {
	posts := s.store.Snapshot().FindPosts(func(p *models.BlogPost) bool {
		return p.Status == models.BlogStatusPublished
	})
	slices.SortStableFunc(posts, func(a, b *models.BlogPost) int {
		return publishedTime(b).Compare(publishedTime(a))
	})
	return posts
}

func publishedTime(p *models.BlogPost) time.Time {
	if p.PublishedAt == nil {
		return time.Time{}
	}
	return *p.PublishedAt
}

// PendingPosts returns posts awaiting review in store order
func (s *blogService) PendingPosts() []*models.BlogPost {
	return s.store.Snapshot().FindPosts(func(p *models.BlogPost) bool {
		return p.Status == models.BlogStatusPending
	})
}

// PostsByAuthor returns the author's posts in store order
func (s *blogService) PostsByAuthor(authorID string) []*models.BlogPost {
	return s.store.Snapshot().FindPosts(func(p *models.BlogPost) bool {
		return p.AuthorID == authorID
	})
}

// PostBySlug returns the first post with the slug, or nil
func (s *blogService) PostBySlug(slug string) *models.BlogPost {
	return s.store.Snapshot().PostBySlug(slug)
}

// PostByID returns the post or nil
func (s *blogService) PostByID(id string) *models.BlogPost {
	return s.store.Snapshot().PostByID(id)
}
