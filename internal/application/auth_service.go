package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NTElissa/Tech-Enthusiast/config"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
	"github.com/NTElissa/Tech-Enthusiast/pkg/helpers"
	"github.com/NTElissa/Tech-Enthusiast/pkg/mailer"
	tpl "github.com/NTElissa/Tech-Enthusiast/pkg/mailer/templates"
)

const (
	verificationTokenBytes = 32
	resetTokenTTL          = 30 * time.Minute
)

// AuthService orchestrates signup, login, email verification and the
// password-reset flow.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Pub: pub, Logger: logger, Cfg: cfg}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type SignupInput struct {
	Email           string
	Username        string
	FirstName       string
	LastName        string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
	Age             int
	Role            *entity.Role
}

// Signup validates the input, creates an unverified user and enqueues the
// verification email. A caller-supplied role is honored only when the actor
// is an authenticated super admin; anyone else always gets the user role.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, actorRole *entity.Role) (*entity.User, error) {
	if in.Email == "" || in.Username == "" || in.FirstName == "" || in.LastName == "" ||
		in.PhoneNumber == "" || in.Password == "" || in.ConfirmPassword == "" || in.Age == 0 {
		return nil, apperr.Validation("all fields are required")
	}
	if in.Age < 18 {
		return nil, apperr.Validation("you must be at least 18 years old to register")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperr.Validation("passwords do not match")
	}

	exists, err := s.Repo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("email or username already exists")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	token, err := helpers.GenerateToken(verificationTokenBytes)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	role := entity.RoleUser
	if in.Role != nil && in.Role.Valid() && actorRole != nil && *actorRole == entity.RoleSuperAdmin {
		role = *in.Role
	}

	u := &entity.User{
		Email:             in.Email,
		Username:          in.Username,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		PhoneNumber:       in.PhoneNumber,
		Password:          hash,
		Age:               in.Age,
		Role:              role,
		IsVerified:        false,
		VerificationToken: token,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The store is the authoritative uniqueness arbiter; a concurrent
		// duplicate signup surfaces here as a conflict.
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	s.sendVerificationEmail(ctx, u)
	return u, nil
}

// sendVerificationEmail is best-effort: a queue failure is logged and never
// fails the signup.
func (s *AuthService) sendVerificationEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	link := s.Cfg.VerifyEmailURL + "?token=" + u.VerificationToken
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.VerifyEmail,
		Data:     map[string]any{"Name": u.FirstName, "Link": link},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue verification email")
	}
}

// Login checks credentials and issues a session/refresh token pair. Unknown
// email and wrong password return the same generic error so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	if email == "" || password == "" {
		return nil, TokenPair{}, apperr.Validation("email and password are required")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, TokenPair{}, apperr.Auth("invalid credentials")
		}
		return nil, TokenPair{}, apperr.Internal(err)
	}
	if !u.IsVerified {
		return nil, TokenPair{}, apperr.Auth("please verify your email before logging in")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, apperr.Auth("invalid credentials")
	}
	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) issueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// VerifyEmail consumes a verification token. Tokens are single-use: the
// lookup and the clear are one atomic store operation, so a second attempt
// with the same token always fails.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperr.Validation("verification token is required")
	}
	if _, err := s.Repo.ConsumeVerificationToken(ctx, token); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.Validation("invalid verification token")
		}
		return apperr.Internal(err)
	}
	return nil
}

// DevVerify marks an account verified without a token. Available only in a
// development configuration.
func (s *AuthService) DevVerify(ctx context.Context, email string) error {
	if s.Cfg == nil || !s.Cfg.IsDevelopment() {
		return apperr.Forbidden("not available in this environment")
	}
	if email == "" {
		return apperr.Validation("email is required")
	}
	if err := s.Repo.VerifyByEmail(ctx, email); err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Internal(err)
	}
	return nil
}

// Refresh mints a new token pair from a refresh token. The user is
// re-resolved so a deleted account cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	if refreshToken == "" {
		return nil, TokenPair{}, apperr.Validation("refresh token is required")
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperr.Auth("invalid refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, TokenPair{}, apperr.Auth("invalid refresh token")
	}
	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// ResetInit stores a reset token for the account and enqueues the reset
// email. The response is identical whether or not the email exists.
func (s *AuthService) ResetInit(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Validation("email is required")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil // no enumeration
		}
		return apperr.Internal(err)
	}
	token, err := helpers.GenerateToken(verificationTokenBytes)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.Repo.SetResetToken(ctx, u.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return apperr.Internal(err)
	}
	if s.Pub != nil && s.Cfg != nil && s.Cfg.MailSendEnabled {
		link := s.Cfg.ResetURL + "?token=" + token
		job := mailer.EmailJob{
			To:       u.Email,
			Template: tpl.ResetPassword,
			Data:     map[string]any{"Name": u.FirstName, "Link": link, "ExpiresIn": resetTokenTTL.String()},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue reset email")
		}
	}
	return nil
}

// ResetConfirm consumes an unexpired reset token and stores the new password.
func (s *AuthService) ResetConfirm(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperr.Validation("reset token is required")
	}
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters long")
	}
	u, err := s.Repo.ConsumeResetToken(ctx, token, time.Now())
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.Validation("invalid or expired reset token")
		}
		return apperr.Internal(err)
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
