package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// conflictFromPG translates a unique-constraint violation into the
// authoritative ConflictError. A concurrent duplicate write can slip past the
// application-level existence check; the constraint cannot be raced.
func conflictFromPG(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return apperr.Conflict("email or username already exists"), true
		case strings.Contains(pgErr.ConstraintName, "username"):
			return apperr.Conflict("email or username already exists"), true
		case strings.Contains(pgErr.ConstraintName, "slug"):
			return apperr.Conflict("a post with this title already exists"), true
		}
		return apperr.Conflict("duplicate value"), true
	}
	return nil, false
}

// notFoundFromFK translates a foreign-key violation into a NotFoundError with
// the given message. Used where a referenced row may vanish between the
// caller's read and the write.
func notFoundFromFK(err error, msg string) (error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return apperr.NotFound(msg), true
	}
	return nil, false
}

const userColumns = `id, email, username, first_name, last_name, phone_number, password_hash,
	age, bio, profile_picture, role, is_verified, verification_token,
	password_reset_token, password_reset_expires, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.Password, &u.Age, &u.Bio, &u.ProfilePicture, &u.Role, &u.IsVerified,
		&u.VerificationToken, &u.PasswordResetToken, &u.PasswordResetExpires,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, first_name, last_name, phone_number,
			password_hash, age, bio, profile_picture, role, is_verified, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Username, u.FirstName, u.LastName, u.PhoneNumber,
		u.Password, u.Age, u.Bio, u.ProfilePicture, u.Role, u.IsVerified, u.VerificationToken)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if conflict, ok := conflictFromPG(err); ok {
			return conflict
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)
	`, email, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3, phone_number = $4,
			bio = $5, profile_picture = $6, password_hash = $7, updated_at = $8
		WHERE id = $9
	`, u.Username, u.FirstName, u.LastName, u.PhoneNumber, u.Bio, u.ProfilePicture, u.Password, u.UpdatedAt, u.ID)
	if err != nil {
		if conflict, ok := conflictFromPG(err); ok {
			return conflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ConsumeVerificationToken is single-use by construction: the lookup and the
// clear happen in one UPDATE, so a concurrent duplicate request sees zero rows.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET is_verified = TRUE, verification_token = '', updated_at = now()
		WHERE verification_token = $1 AND verification_token <> ''
		RETURNING `+userColumns, token)
	return scanUser(row)
}

func (r *UserRepository) VerifyByEmail(ctx context.Context, email string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, verification_token = '', updated_at = now()
		WHERE email = $1
	`, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = now() WHERE id = $2
	`, role, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_reset_token = $1, password_reset_expires = $2, updated_at = now()
		WHERE id = $3
	`, token, expires, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET password_reset_token = '', password_reset_expires = 'epoch', updated_at = now()
		WHERE password_reset_token = $1 AND password_reset_token <> '' AND password_reset_expires > $2
		RETURNING `+userColumns, token, now)
	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)
