package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

func newPostSvc(posts *postRepoStub) *PostService {
	return NewPostService(posts, &userRepoStub{}, nil, "", nil)
}

func author() Identity {
	return Identity{UserID: "author-1", Role: entity.RoleUser}
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	var created *entity.Post
	posts := &postRepoStub{
		create: func(ctx context.Context, p *entity.Post) error {
			p.ID = "p1"
			created = p
			return nil
		},
	}
	svc := newPostSvc(posts)

	p, err := svc.Create(context.Background(), "author-1", PostInput{
		Title:    "Hello World! A Go Story",
		Content:  "body",
		Summary:  "a short story",
		Category: "go",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hello-world-a-go-story", p.Slug)
	assert.Equal(t, entity.StatusPublished, p.Status)
	assert.Equal(t, "author-1", p.AuthorID)
	assert.False(t, p.PublishedAt.IsZero())
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	posts := &postRepoStub{
		slugExists: func(ctx context.Context, slug, excludeID string) (bool, error) { return true, nil },
	}
	svc := newPostSvc(posts)

	_, err := svc.Create(context.Background(), "author-1", PostInput{Title: "Hello", Content: "body", Summary: "s", Category: "go"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateRequiresSummaryAndCategory(t *testing.T) {
	svc := newPostSvc(&postRepoStub{})

	_, err := svc.Create(context.Background(), "author-1", PostInput{Title: "No Summary", Content: "body"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(context.Background(), "author-1", PostInput{Title: "No Category", Content: "body", Summary: "s"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	svc := newPostSvc(&postRepoStub{})
	_, err := svc.Create(context.Background(), "author-1", PostInput{Title: "Hi", Content: "x", Summary: "s", Category: "go", Status: "hidden"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateDraftHasNoPublishedAt(t *testing.T) {
	posts := &postRepoStub{
		create: func(ctx context.Context, p *entity.Post) error { p.ID = "p1"; return nil },
	}
	svc := newPostSvc(posts)

	p, err := svc.Create(context.Background(), "author-1", PostInput{Title: "Draft", Content: "x", Summary: "s", Category: "go", Status: "draft"})
	require.NoError(t, err)
	assert.True(t, p.PublishedAt.IsZero())
}

func TestListClampsPageAndLimit(t *testing.T) {
	var got repository.PostFilter
	posts := &postRepoStub{
		list: func(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int, error) {
			got = f
			return nil, 0, nil
		},
	}
	svc := newPostSvc(posts)

	_, err := svc.List(context.Background(), repository.PostFilter{Page: -3, Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, maxPageSize, got.Limit)
	assert.Equal(t, string(entity.StatusPublished), got.Status)
}

func TestListComputesTotalPagesCeiling(t *testing.T) {
	posts := &postRepoStub{
		list: func(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int, error) {
			out := make([]*entity.Post, f.Limit)
			for i := range out {
				out[i] = &entity.Post{ID: "p"}
			}
			return out, 25, nil
		},
	}
	svc := newPostSvc(posts)

	page, err := svc.List(context.Background(), repository.PostFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
}

func TestGetIncrementsViews(t *testing.T) {
	bumped := false
	posts := &postRepoStub{
		getBumpViews: func(ctx context.Context, id string) (*entity.Post, error) {
			bumped = true
			return &entity.Post{ID: id, Views: 42}, nil
		},
	}
	svc := newPostSvc(posts)

	p, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, bumped)
	assert.EqualValues(t, 42, p.Views)
}

func TestGetUnknownPostIsNotFound(t *testing.T) {
	svc := newPostSvc(&postRepoStub{})
	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateForbiddenForNonAuthor(t *testing.T) {
	posts := &postRepoStub{
		getByID: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, AuthorID: "someone-else"}, nil
		},
	}
	svc := newPostSvc(posts)

	content := "new content"
	_, err := svc.Update(context.Background(), "p1", author(), PostUpdateInput{Content: &content})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestUpdateAllowedForAdminNonAuthor(t *testing.T) {
	posts := &postRepoStub{
		getByID: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, AuthorID: "someone-else", Status: entity.StatusPublished}, nil
		},
	}
	svc := newPostSvc(posts)
	admin := Identity{UserID: "admin-1", Role: entity.RoleAdmin}

	content := "moderated"
	p, err := svc.Update(context.Background(), "p1", admin, PostUpdateInput{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "moderated", p.Content)
}

func TestUpdateTitleRegeneratesSlugAndChecksUniqueness(t *testing.T) {
	var checkedSlug, checkedExclude string
	posts := &postRepoStub{
		getByID: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, AuthorID: "author-1", Title: "Old", Slug: "old", Status: entity.StatusPublished}, nil
		},
		slugExists: func(ctx context.Context, slug, excludeID string) (bool, error) {
			checkedSlug = slug
			checkedExclude = excludeID
			return false, nil
		},
	}
	svc := newPostSvc(posts)

	title := "Brand New Title"
	p, err := svc.Update(context.Background(), "p1", author(), PostUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", p.Slug)
	assert.Equal(t, "brand-new-title", checkedSlug)
	assert.Equal(t, "p1", checkedExclude)
}

func TestUpdateTitleCollisionIsConflict(t *testing.T) {
	posts := &postRepoStub{
		getByID: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, AuthorID: "author-1", Title: "Old", Slug: "old"}, nil
		},
		slugExists: func(ctx context.Context, slug, excludeID string) (bool, error) { return true, nil },
	}
	svc := newPostSvc(posts)

	title := "Taken Title"
	_, err := svc.Update(context.Background(), "p1", author(), PostUpdateInput{Title: &title})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestDeleteForbiddenForNonAuthor(t *testing.T) {
	posts := &postRepoStub{
		getByID: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, AuthorID: "someone-else"}, nil
		},
	}
	svc := newPostSvc(posts)

	err := svc.Delete(context.Background(), "p1", author())
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestDeleteAllowedForAuthor(t *testing.T) {
	deleted := ""
	posts := &postRepoStub{
		getByID: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, AuthorID: "author-1"}, nil
		},
		deleteByID: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := newPostSvc(posts)

	require.NoError(t, svc.Delete(context.Background(), "p1", author()))
	assert.Equal(t, "p1", deleted)
}

func TestToggleLikeReportsNewState(t *testing.T) {
	liked := map[string]bool{}
	posts := &postRepoStub{
		toggleLike: func(ctx context.Context, postID, userID string) (bool, int, error) {
			liked[userID] = !liked[userID]
			n := 0
			if liked[userID] {
				n = 1
			}
			return liked[userID], n, nil
		},
	}
	svc := newPostSvc(posts)

	on, count, err := svc.ToggleLike(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, count)

	off, count, err := svc.ToggleLike(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, 0, count)
}

func TestSearchWithoutESReturnsEmpty(t *testing.T) {
	svc := newPostSvc(&postRepoStub{})
	hits, err := svc.Search(context.Background(), "golang", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
