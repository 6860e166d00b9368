package repository

import (
	"context"
	"time"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
// Implementations own uniqueness enforcement: Create and Update report a
// duplicate email/username as a conflict regardless of any prior existence
// check done by the caller.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)

	// ConsumeVerificationToken marks the owning user verified and clears the
	// token in one atomic statement. Returns the user, or a not-found error
	// when the token does not match any record (including a token that was
	// already consumed).
	ConsumeVerificationToken(ctx context.Context, token string) (*entity.User, error)

	// VerifyByEmail performs the same transition keyed by email address
	// (development bypass path).
	VerifyByEmail(ctx context.Context, email string) error

	UpdateRole(ctx context.Context, id string, role entity.Role) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetResetToken stores a password-reset token and its expiry.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error

	// ConsumeResetToken atomically looks up an unexpired reset token, clears
	// it, and returns the owning user.
	ConsumeResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
}
