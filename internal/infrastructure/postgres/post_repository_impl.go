package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

const postColumns = `p.id, p.title, p.slug, p.content, p.summary, p.author_id, p.category,
	p.tags, p.featured, p.status, p.views, p.published_at, p.created_at, p.updated_at,
	u.username, u.first_name, u.last_name,
	(SELECT coalesce(array_agg(pl.user_id::text), '{}') FROM post_likes pl WHERE pl.post_id = p.id)`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Summary, &p.AuthorID, &p.Category,
		&p.Tags, &p.Featured, &p.Status, &p.Views, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		&p.AuthorUsername, &p.AuthorFirstName, &p.AuthorLastName, &p.Likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	p.LikesCount = len(p.Likes)
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, slug, content, summary, author_id, category, tags, featured, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, views, created_at, updated_at
	`, p.Title, p.Slug, p.Content, p.Summary, p.AuthorID, p.Category, p.Tags, p.Featured, p.Status, p.PublishedAt)

	if err := row.Scan(&p.ID, &p.Views, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if conflict, ok := conflictFromPG(err); ok {
			return conflict
		}
		return err
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id)
	return scanPost(row)
}

// GetByIDAndIncrementViews bumps the counter and fetches in one statement, so
// concurrent reads cannot lose increments.
func (r *PostRepository) GetByIDAndIncrementViews(ctx context.Context, id string) (*entity.Post, error) {
	row := r.pool.QueryRow(ctx, `
		WITH bumped AS (
			UPDATE posts SET views = views + 1 WHERE id = $1
			RETURNING *
		)
		SELECT `+postColumns+`
		FROM bumped p JOIN users u ON u.id = p.author_id
	`, id)
	return scanPost(row)
}

func (r *PostRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	}
	return exists, err
}

func (r *PostRepository) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int, error) {
	where := []string{"TRUE"}
	var args []any

	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(p.tags)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.summary ILIKE $%d OR p.content ILIKE $%d)", n, n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts p WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	query := fmt.Sprintf(`
		SELECT `+postColumns+`
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE `+cond+`
		ORDER BY p.published_at DESC
		LIMIT $%d OFFSET $%d
	`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, slug = $2, content = $3, summary = $4, category = $5,
			tags = $6, featured = $7, status = $8, updated_at = $9
		WHERE id = $10
	`, p.Title, p.Slug, p.Content, p.Summary, p.Category, p.Tags, p.Featured, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		if conflict, ok := conflictFromPG(err); ok {
			return conflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// ToggleLike flips like membership. The primary key on (post_id, user_id)
// makes a duplicate like impossible even under concurrent toggles.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		// A missing post surfaces as a post_likes.post_id FK violation.
		if nf, ok := notFoundFromFK(err, "post not found"); ok {
			return false, 0, nf
		}
		return false, 0, err
	}
	liked := res.RowsAffected() == 1
	if !liked {
		if _, err := tx.Exec(ctx, `
			DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2
		`, postID, userID); err != nil {
			return false, 0, err
		}
	}

	var count int
	if err := tx.QueryRow(ctx, `
		SELECT count(*) FROM post_likes WHERE post_id = $1
	`, postID).Scan(&count); err != nil {
		return false, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
