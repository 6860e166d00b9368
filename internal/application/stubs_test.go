package application

import (
	"context"
	"time"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

// userRepoStub implements repository.UserRepository with overridable
// function fields. Unset methods return not-found.
type userRepoStub struct {
	create       func(ctx context.Context, u *entity.User) error
	getByID      func(ctx context.Context, id string) (*entity.User, error)
	getByEmail   func(ctx context.Context, email string) (*entity.User, error)
	exists       func(ctx context.Context, email, username string) (bool, error)
	update       func(ctx context.Context, u *entity.User) error
	delete       func(ctx context.Context, id string) error
	list         func(ctx context.Context) ([]*entity.User, error)
	consumeVerif func(ctx context.Context, token string) (*entity.User, error)
	verifyEmail  func(ctx context.Context, email string) error
	updateRole   func(ctx context.Context, id string, role entity.Role) error
	updatePass   func(ctx context.Context, id, hash string) error
	setReset     func(ctx context.Context, id, token string, expires time.Time) error
	consumeReset func(ctx context.Context, token string, now time.Time) (*entity.User, error)
}

var _ repository.UserRepository = (*userRepoStub)(nil)

func (s *userRepoStub) Create(ctx context.Context, u *entity.User) error {
	if s.create != nil {
		return s.create(ctx, u)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, apperr.NotFound("user not found")
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, apperr.NotFound("user not found")
}

func (s *userRepoStub) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	if s.exists != nil {
		return s.exists(ctx, email, username)
	}
	return false, nil
}

func (s *userRepoStub) Update(ctx context.Context, u *entity.User) error {
	if s.update != nil {
		return s.update(ctx, u)
	}
	return nil
}

func (s *userRepoStub) Delete(ctx context.Context, id string) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func (s *userRepoStub) List(ctx context.Context) ([]*entity.User, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *userRepoStub) ConsumeVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	if s.consumeVerif != nil {
		return s.consumeVerif(ctx, token)
	}
	return nil, apperr.NotFound("token not found")
}

func (s *userRepoStub) VerifyByEmail(ctx context.Context, email string) error {
	if s.verifyEmail != nil {
		return s.verifyEmail(ctx, email)
	}
	return nil
}

func (s *userRepoStub) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	if s.updateRole != nil {
		return s.updateRole(ctx, id, role)
	}
	return nil
}

func (s *userRepoStub) UpdatePassword(ctx context.Context, id, hash string) error {
	if s.updatePass != nil {
		return s.updatePass(ctx, id, hash)
	}
	return nil
}

func (s *userRepoStub) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	if s.setReset != nil {
		return s.setReset(ctx, id, token, expires)
	}
	return nil
}

func (s *userRepoStub) ConsumeResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	if s.consumeReset != nil {
		return s.consumeReset(ctx, token, now)
	}
	return nil, apperr.NotFound("token not found")
}

// postRepoStub implements repository.PostRepository.
type postRepoStub struct {
	create       func(ctx context.Context, p *entity.Post) error
	getByID      func(ctx context.Context, id string) (*entity.Post, error)
	getBumpViews func(ctx context.Context, id string) (*entity.Post, error)
	slugExists   func(ctx context.Context, slug, excludeID string) (bool, error)
	list         func(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int, error)
	update       func(ctx context.Context, p *entity.Post) error
	deleteByID   func(ctx context.Context, id string) error
	toggleLike   func(ctx context.Context, postID, userID string) (bool, int, error)
}

var _ repository.PostRepository = (*postRepoStub)(nil)

func (s *postRepoStub) Create(ctx context.Context, p *entity.Post) error {
	if s.create != nil {
		return s.create(ctx, p)
	}
	return nil
}

func (s *postRepoStub) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, apperr.NotFound("post not found")
}

func (s *postRepoStub) GetByIDAndIncrementViews(ctx context.Context, id string) (*entity.Post, error) {
	if s.getBumpViews != nil {
		return s.getBumpViews(ctx, id)
	}
	return nil, apperr.NotFound("post not found")
}

func (s *postRepoStub) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	if s.slugExists != nil {
		return s.slugExists(ctx, slug, excludeID)
	}
	return false, nil
}

func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int, error) {
	if s.list != nil {
		return s.list(ctx, f)
	}
	return nil, 0, nil
}

func (s *postRepoStub) Update(ctx context.Context, p *entity.Post) error {
	if s.update != nil {
		return s.update(ctx, p)
	}
	return nil
}

func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	if s.deleteByID != nil {
		return s.deleteByID(ctx, id)
	}
	return nil
}

func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	if s.toggleLike != nil {
		return s.toggleLike(ctx, postID, userID)
	}
	return false, 0, nil
}
