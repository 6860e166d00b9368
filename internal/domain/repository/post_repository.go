package repository

import (
	"context"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
)

// PostFilter narrows List results. Page is 1-indexed. Status is a post
// status, or "all" to include every status.
type PostFilter struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Search   string
	Status   string
}

// PostRepository defines the interface for post persistence.
// Slug uniqueness is enforced by the store; Create and Update report a
// duplicate slug as a conflict.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)

	// GetByIDAndIncrementViews fetches a post and bumps its view counter in a
	// single statement, so concurrent reads never lose increments.
	GetByIDAndIncrementViews(ctx context.Context, id string) (*entity.Post, error)

	// SlugExists reports whether another post already uses the slug.
	// excludeID is skipped, so an update does not collide with itself.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, f PostFilter) ([]*entity.Post, int, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error

	// ToggleLike adds the user to the post's like set, or removes them when
	// already present. Returns whether the post ended up liked and the new
	// like count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error)
}
