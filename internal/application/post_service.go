package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// PostService implements the post lifecycle: authoring, listing, view
// counting, likes and full-text search.
type PostService struct {
	Posts        repository.PostRepository
	Users        repository.UserRepository
	ES           *elasticsearch.Client
	ESPostsIndex string
	Logger       *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, ES: es, ESPostsIndex: esIndex, Logger: logger}
}

type PostInput struct {
	Title    string
	Content  string
	Summary  string
	Category string
	Tags     []string
	Featured bool
	Status   string
}

type PostUpdateInput struct {
	Title    *string
	Content  *string
	Summary  *string
	Category *string
	Tags     []string
	Featured *bool
	Status   *string
}

type PostPage struct {
	Posts      []*entity.Post
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Create builds a slug from the title and persists the post. The slug must
// be unique across all posts; the store constraint is the final arbiter for
// concurrent submissions of the same title.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*entity.Post, error) {
	if in.Title == "" || in.Content == "" || in.Summary == "" || in.Category == "" {
		return nil, apperr.Validation("title, content, summary and category are required")
	}
	status := entity.PostStatus(in.Status)
	if in.Status == "" {
		status = entity.StatusPublished
	}
	if !status.Valid() {
		return nil, apperr.Validation("status must be one of draft, published, archived")
	}

	sl := slug.Make(in.Title)
	if sl == "" {
		return nil, apperr.Validation("title must contain at least one alphanumeric character")
	}
	taken, err := s.Posts.SlugExists(ctx, sl, "")
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict("a post with this title already exists")
	}

	p := &entity.Post{
		Title:    in.Title,
		Slug:     sl,
		Content:  in.Content,
		Summary:  in.Summary,
		Category: in.Category,
		Tags:     in.Tags,
		Featured: in.Featured,
		Status:   status,
		AuthorID: authorID,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if status == entity.StatusPublished {
		p.PublishedAt = time.Now()
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	s.indexPost(ctx, p)
	return p, nil
}

// List returns a page of posts. Page and limit are clamped to sane values;
// listing defaults to published posts only.
func (s *PostService) List(ctx context.Context, f repository.PostFilter) (*PostPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Status == "" {
		f.Status = string(entity.StatusPublished)
	}
	if f.Status != "all" && !entity.PostStatus(f.Status).Valid() {
		return nil, apperr.Validation("status must be one of draft, published, archived, all")
	}
	posts, total, err := s.Posts.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	return &PostPage{Posts: posts, Total: total, Page: f.Page, Limit: f.Limit, TotalPages: pages}, nil
}

// Get fetches a single post and bumps its view counter in the same store
// round trip, so concurrent reads never lose an increment.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByIDAndIncrementViews(ctx, id)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	return p, nil
}

// Update applies a partial update. Only the author or an admin may modify a
// post; a title change regenerates the slug, which must again be unique.
func (s *PostService) Update(ctx context.Context, id string, actor Identity, in PostUpdateInput) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	if !canModifyPost(p, actor) {
		return nil, apperr.Forbidden("you may only modify your own posts")
	}

	if in.Title != nil && *in.Title != p.Title {
		if *in.Title == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		sl := slug.Make(*in.Title)
		if sl == "" {
			return nil, apperr.Validation("title must contain at least one alphanumeric character")
		}
		if sl != p.Slug {
			taken, err := s.Posts.SlugExists(ctx, sl, p.ID)
			if err != nil {
				return nil, apperr.Internal(err)
			}
			if taken {
				return nil, apperr.Conflict("a post with this title already exists")
			}
		}
		p.Title = *in.Title
		p.Slug = sl
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, apperr.Validation("content cannot be empty")
		}
		p.Content = *in.Content
	}
	if in.Summary != nil {
		p.Summary = *in.Summary
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Status != nil {
		st := entity.PostStatus(*in.Status)
		if !st.Valid() {
			return nil, apperr.Validation("status must be one of draft, published, archived")
		}
		if st == entity.StatusPublished && p.Status != entity.StatusPublished {
			p.PublishedAt = time.Now()
		}
		p.Status = st
	}

	if err := s.Posts.Update(ctx, p); err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	s.indexPost(ctx, p)
	return p, nil
}

// Delete removes a post. Same ownership rule as Update.
func (s *PostService) Delete(ctx context.Context, id string, actor Identity) error {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Internal(err)
	}
	if !canModifyPost(p, actor) {
		return apperr.Forbidden("you may only delete your own posts")
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Internal(err)
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// ToggleLike flips the caller's like on a post and reports the new state.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error) {
	liked, count, err = s.Posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return false, 0, err
		}
		return false, 0, apperr.Internal(err)
	}
	return liked, count, nil
}

func canModifyPost(p *entity.Post, actor Identity) bool {
	return p.AuthorID == actor.UserID || actor.Role.AtLeast(entity.RoleAdmin)
}

// indexPost mirrors the post into the search index. Best-effort: search
// lag never fails a write.
func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	doc := map[string]any{
		"title":     p.Title,
		"slug":      p.Slug,
		"summary":   p.Summary,
		"content":   p.Content,
		"category":  p.Category,
		"tags":      p.Tags,
		"status":    string(p.Status),
		"author_id": p.AuthorID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPostsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

func (s *PostService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPostsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over titles, summaries, content and tags.
func (s *PostService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "summary^2", "content", "tags"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESPostsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		doc := h.Source
		doc["id"] = h.ID
		out = append(out, doc)
	}
	return out, nil
}
