package modules

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NTElissa/Tech-Enthusiast/internal/application"
	"github.com/NTElissa/Tech-Enthusiast/internal/container"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	handlers "github.com/NTElissa/Tech-Enthusiast/internal/interface/http"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
	"github.com/NTElissa/Tech-Enthusiast/pkg/helpers"
)

type usersByID map[string]*entity.User

func (s usersByID) Create(ctx context.Context, u *entity.User) error { return nil }
func (s usersByID) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := s[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("user not found")
}
func (s usersByID) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, apperr.NotFound("user not found")
}
func (s usersByID) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	return false, nil
}
func (s usersByID) Update(ctx context.Context, u *entity.User) error { return nil }
func (s usersByID) Delete(ctx context.Context, id string) error      { return nil }
func (s usersByID) List(ctx context.Context) ([]*entity.User, error) { return nil, nil }
func (s usersByID) ConsumeVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	return nil, apperr.NotFound("invalid verification token")
}
func (s usersByID) VerifyByEmail(ctx context.Context, email string) error { return nil }
func (s usersByID) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	return nil
}
func (s usersByID) UpdatePassword(ctx context.Context, id, passwordHash string) error { return nil }
func (s usersByID) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return nil
}
func (s usersByID) ConsumeResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	return nil, apperr.NotFound("invalid or expired reset token")
}

var _ repository.UserRepository = usersByID(nil)

type recordingPosts struct {
	created *entity.Post
}

func (s *recordingPosts) Create(ctx context.Context, p *entity.Post) error {
	p.ID = "p1"
	s.created = p
	return nil
}
func (s *recordingPosts) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return nil, apperr.NotFound("post not found")
}
func (s *recordingPosts) GetByIDAndIncrementViews(ctx context.Context, id string) (*entity.Post, error) {
	return nil, apperr.NotFound("post not found")
}
func (s *recordingPosts) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return false, nil
}
func (s *recordingPosts) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int, error) {
	return nil, 0, nil
}
func (s *recordingPosts) Update(ctx context.Context, p *entity.Post) error { return nil }
func (s *recordingPosts) Delete(ctx context.Context, id string) error      { return nil }
func (s *recordingPosts) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	return false, 0, nil
}

var _ repository.PostRepository = (*recordingPosts)(nil)

func newBlogRouter(t *testing.T, users repository.UserRepository, posts repository.PostRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	container.SetJWT(helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, time.Hour))
	container.SetRedis(nil)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := application.NewPostService(posts, users, nil, "", logger)
	h := handlers.NewPostHandler(svc, logger)

	engine := gin.New()
	api := engine.Group("/api")
	NewBlogModule(h, users).Register(api)
	return engine
}

func mintToken(t *testing.T, u *entity.User) string {
	t.Helper()
	token, _, err := container.GetJWT().GenerateAccessToken(u)
	require.NoError(t, err)
	return token
}

func postJSON(engine *gin.Engine, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"title":"Hello World!","content":"body","summary":"s","category":"go"}`

func TestCreatePostRequiresAdminRole(t *testing.T) {
	reader := &entity.User{ID: "u1", Email: "reader@example.com", Username: "reader", Role: entity.RoleUser}
	posts := &recordingPosts{}
	engine := newBlogRouter(t, usersByID{"u1": reader}, posts)

	rec := postJSON(engine, "/api/posts", mintToken(t, reader), createBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, posts.created)
}

func TestCreatePostAllowsAdmin(t *testing.T) {
	admin := &entity.User{ID: "a1", Email: "admin@example.com", Username: "admin", Role: entity.RoleAdmin}
	posts := &recordingPosts{}
	engine := newBlogRouter(t, usersByID{"a1": admin}, posts)

	rec := postJSON(engine, "/api/posts", mintToken(t, admin), createBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, posts.created)
	assert.Equal(t, "a1", posts.created.AuthorID)
}

func TestCreatePostRejectsAnonymous(t *testing.T) {
	engine := newBlogRouter(t, usersByID{}, &recordingPosts{})

	rec := postJSON(engine, "/api/posts", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
