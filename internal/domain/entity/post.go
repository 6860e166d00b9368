package entity

import "time"

// PostStatus is the visibility state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Post is a blog post. Slug is derived deterministically from the title and
// unique across the store. Likes holds the ids of users who liked the post;
// the post_likes table guarantees a user appears at most once.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Content     string
	Summary     string
	AuthorID    string
	Category    string
	Tags        []string
	Featured    bool
	Status      PostStatus
	Likes       []string
	LikesCount  int
	Views       int64
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Denormalized author fields for list/detail responses.
	AuthorUsername  string
	AuthorFirstName string
	AuthorLastName  string
}

// Public returns the client-facing representation of the post.
func (p *Post) Public() map[string]any {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"slug":        p.Slug,
		"content":     p.Content,
		"summary":     p.Summary,
		"category":    p.Category,
		"tags":        tags,
		"featured":    p.Featured,
		"status":      string(p.Status),
		"likes":       likes,
		"likesCount":  p.LikesCount,
		"views":       p.Views,
		"publishedAt": p.PublishedAt,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
		"author": map[string]any{
			"id":        p.AuthorID,
			"username":  p.AuthorUsername,
			"firstName": p.AuthorFirstName,
			"lastName":  p.AuthorLastName,
		},
	}
}
