package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/email"
	"github.com/ferdiebergado/finderid/internal/platform/hash"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
	"github.com/ferdiebergado/finderid/internal/user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotVerified    = errors.New("email not verified")
	ErrUserExists         = errors.New("user already exists")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Repository interface {
	Verify(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, passwordHash string) error
}

type UserService interface {
	Create(ctx context.Context, params user.CreateParams) (user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Find(ctx context.Context, userID string) (*user.User, error)
}

type Service struct {
	repo   Repository
	users  UserService
	hasher hash.Hasher
	signer jwt.Signer
	mailer email.Mailer
	cfg    *config.Config
}

var _ AuthService = (*Service)(nil)

func NewService(repo Repository, provider *Provider) *Service {
	return &Service{
		repo:   repo,
		users:  provider.Users,
		hasher: provider.Hasher,
		signer: provider.Signer,
		mailer: provider.Mailer,
		cfg:    provider.Cfg,
	}
}

type RegisterParams struct {
	Email       string
	Password    string
	DisplayName string
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("display_name", p.DisplayName),
	)
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	existing, err := s.users.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return user.User{}, fmt.Errorf("find user by email: %w", err)
	}

	if existing != nil {
		return user.User{}, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.CreateParams{
		Email:        params.Email,
		DisplayName:  params.DisplayName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return user.User{}, ErrUserExists
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	go s.sendLink(&linkEmail{
		To:       newUser.Email,
		Subject:  "Verify your email",
		Title:    "Email verification",
		Template: "verification",
		UserID:   newUser.ID,
		Audience: VerifyAudience(s.cfg),
		TTL:      s.cfg.Email.VerifyTTL.Duration,
	})

	return newUser, nil
}

type linkEmail struct {
	To, Subject, Title, Template, UserID, Audience string
	TTL                                            time.Duration
}

func (s *Service) sendLink(e *linkEmail) {
	token, err := s.signer.Sign(e.UserID, []string{e.Audience}, e.TTL)
	if err != nil {
		slog.Error("failed to sign link token", "template", e.Template, "reason", err)
		return
	}

	data := map[string]string{
		"Title":  e.Title,
		"Header": e.Subject,
		"Link":   e.Audience + "?token=" + token,
	}
	if err := s.mailer.SendHTML([]string{e.To}, e.Subject, e.Template, data); err != nil {
		slog.Error("failed to send email", "template", e.Template, "reason", err)
	}
}

func (s *Service) Verify(ctx context.Context, userID string) error {
	if err := s.repo.Verify(ctx, userID); err != nil {
		return fmt.Errorf("verify user %s: %w", userID, err)
	}
	return nil
}

// ResendVerification mails a new verification link. Unknown addresses are ignored.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	u, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			slog.Info("verification requested for unknown email")
			return nil
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	if u.VerifiedAt != nil {
		return ErrAlreadyVerified
	}

	go s.sendLink(&linkEmail{
		To:       u.Email,
		Subject:  "Verify your email",
		Title:    "Email verification",
		Template: "verification",
		UserID:   u.ID,
		Audience: VerifyAudience(s.cfg),
		TTL:      s.cfg.Email.VerifyTTL.Duration,
	})

	return nil
}

// rehash upgrades a stored password hash to the current cost parameters. Failures
// only get logged; the login itself already succeeded.
func (s *Service) rehash(ctx context.Context, userID, password string) {
	newHash, err := s.hasher.Hash(password)
	if err != nil {
		slog.Warn("rehash password", "user_id", userID, "reason", err)
		return
	}
	if err := s.repo.ChangePassword(ctx, userID, newHash); err != nil {
		slog.Warn("store rehashed password", "user_id", userID, "reason", err)
	}
}

type LoginParams struct {
	Email    string
	Password string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	if u.VerifiedAt == nil {
		return nil, ErrUserNotVerified
	}

	if s.hasher.NeedsRehash(u.PasswordHash) {
		s.rehash(ctx, u.ID, params.Password)
	}

	accessToken, err := s.signer.Sign(u.ID, []string{AccessAudience(s.cfg)}, s.cfg.JWT.TTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.signer.Sign(u.ID, []string{refreshAudience(s.cfg)}, s.cfg.JWT.RefreshTTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &Session{UserID: u.ID, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.signer.Verify(refreshToken)
	if err != nil {
		return "", fmt.Errorf("verify refresh token: %w: %w", ErrInvalidToken, err)
	}

	if !claims.HasAudience(refreshAudience(s.cfg)) {
		return "", fmt.Errorf("refresh token audience: %w", ErrInvalidToken)
	}

	if _, err := s.users.Find(ctx, claims.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	accessToken, err := s.signer.Sign(claims.UserID, []string{AccessAudience(s.cfg)}, s.cfg.JWT.TTL.Duration)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return accessToken, nil
}

// SendPasswordReset mails a reset link. Unknown addresses are ignored, so the result does not
// reveal which accounts exist.
func (s *Service) SendPasswordReset(ctx context.Context, emailAddr string) error {
	u, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	go s.sendLink(&linkEmail{
		To:       u.Email,
		Subject:  "Reset your password",
		Title:    "Password reset",
		Template: "reset_password",
		UserID:   u.ID,
		Audience: ResetAudience(s.cfg),
		TTL:      s.cfg.Email.VerifyTTL.Duration,
	})

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.repo.ChangePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("change password of user %s: %w", userID, err)
	}

	return nil
}
