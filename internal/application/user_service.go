package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
	"github.com/NTElissa/Tech-Enthusiast/pkg/helpers"
)

// UserService covers profile management and the role-gated administration
// operations.
type UserService struct {
	Repo      repository.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(repo repository.UserRepository, gcs *storage.Client, bucket string, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

type ProfileUpdateInput struct {
	FirstName       *string
	LastName        *string
	Username        *string
	PhoneNumber     *string
	Bio             *string
	CurrentPassword string
	NewPassword     string
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// UpdateProfile applies a partial update to the caller's own profile. A
// password change additionally requires the current password.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Username != nil && *in.Username != u.Username {
		if len(*in.Username) < 3 {
			return nil, apperr.Validation("username must be at least 3 characters long")
		}
		u.Username = *in.Username
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}

	if in.NewPassword != "" {
		if len(in.NewPassword) < 8 {
			return nil, apperr.Validation("password must be at least 8 characters long")
		}
		if !helpers.CompareHashAndPassword(u.Password, in.CurrentPassword) {
			return nil, apperr.Auth("current password is incorrect")
		}
		hash, err := helpers.HashPassword(in.NewPassword)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		u.Password = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		// Username uniqueness is enforced by the store.
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// UploadProfilePicture stores the image in GCS and saves its public URL on
// the profile.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return "", err
		}
		return "", apperr.Internal(err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", apperr.Validation("unsupported image type")
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Internal(errors.New("object storage is not configured"))
	}
	objectPath := filepath.ToSlash(filepath.Join("profiles", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Internal(err)
	}

	u.ProfilePicture = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", apperr.Internal(err)
	}
	return url, nil
}

// ListUsers returns every account. Admin only; enforced at the route.
func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// DeleteUser removes an account. Super admins cannot be deleted by anyone,
// admins can only be deleted by a super admin, and nobody deletes themselves
// through this endpoint.
func (s *UserService) DeleteUser(ctx context.Context, actor Identity, targetID string) error {
	if targetID == actor.UserID {
		return apperr.Forbidden("you cannot delete your own account")
	}
	target, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Internal(err)
	}
	if target.Role == entity.RoleSuperAdmin {
		return apperr.Forbidden("super admin accounts cannot be deleted")
	}
	if target.Role == entity.RoleAdmin && actor.Role != entity.RoleSuperAdmin {
		return apperr.Forbidden("only a super admin can delete an admin account")
	}
	if err := s.Repo.Delete(ctx, targetID); err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Internal(err)
	}
	return nil
}

// UpdateUserRole changes an account's role. Super admin only; enforced at
// the route. A super admin cannot change their own role, which guarantees at
// least one super admin always remains.
func (s *UserService) UpdateUserRole(ctx context.Context, actor Identity, targetID string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, apperr.Validation("role must be one of 0 (user), 1 (admin), 2 (super admin)")
	}
	if targetID == actor.UserID {
		return nil, apperr.Forbidden("you cannot change your own role")
	}
	target, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	if err := s.Repo.UpdateRole(ctx, targetID, role); err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}
	target.Role = role
	return target, nil
}
