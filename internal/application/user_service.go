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

	"github.com/pawkeeper/notices-api/internal/domain/entity"
	"github.com/pawkeeper/notices-api/internal/domain/repository"
	"github.com/pawkeeper/notices-api/pkg/helpers"
	"github.com/pawkeeper/notices-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	// ErrUnauthenticated means the token is missing, malformed, or superseded.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// UserService is the session manager: it owns registration, the login/logout
// token lifecycle, and the profile/avatar operations on the user record.
type UserService struct {
	Repo      repository.UserRepository
	Tokens    *helpers.TokenManager
	GCS       *storage.Client
	GCSBucket string
	Publisher *helpers.RabbitPublisher
	Logger    *logrus.Logger
	MailOn    bool
}

func NewUserService(repo repository.UserRepository, tokens *helpers.TokenManager, gcs *storage.Client, gcsBucket string, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailOn bool) *UserService {
	return &UserService{
		Repo:      repo,
		Tokens:    tokens,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Publisher: pub,
		Logger:    logger,
		MailOn:    mailOn,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Address  string
	Phone    string
	Birthday string
}

type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Register creates a user with no active session. The welcome email is
// best-effort: a publish failure never fails the registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    in.Email,
		Password: hash,
		Name:     in.Name,
		Address:  in.Address,
		Phone:    in.Phone,
		Birthday: in.Birthday,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if s.Publisher != nil && s.MailOn {
		job := mailer.EmailJob{To: u.Email, Template: "welcome", Data: map[string]any{"Name": u.Name}}
		if pErr := s.Publisher.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("email", u.Email).Warn("welcome email publish failed")
		}
	}
	return u, nil
}

// Login verifies the credentials and issues a fresh signed token, persisting
// it as the user's only active session. Any previously issued token is
// superseded by the overwrite and will fail validation from here on.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return nil, err
	}
	if err := s.Repo.SetSessionToken(ctx, u.ID, &token); err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UserID: u.ID}, nil
}

// Refresh re-confirms the authenticated user still exists. It does not rotate
// the token.
func (s *UserService) Refresh(ctx context.Context, userID string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return "", ErrUserNotFound
	}
	return u.ID, nil
}

// Logout clears the stored session token, invalidating the bearer token the
// caller authenticated with.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.SetSessionToken(ctx, userID, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ValidateToken resolves a presented bearer token to a user. A well-signed
// token is not enough: the stored session_token must equal the presented one,
// which is what makes logout and re-login invalidate old tokens immediately.
func (s *UserService) ValidateToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return nil, ErrUnauthenticated
	}
	if u.SessionToken == nil || *u.SessionToken != token {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Email    string
	Name     string
	Address  string
	Phone    string
	Birthday string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Birthday != "" {
		u.Birthday = in.Birthday
	}
	if err := s.Repo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores the image in GCS and records the public URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return "", ErrUserNotFound
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// DeleteAvatar clears the avatar URL and removes the stored object when the
// URL points into our bucket.
func (s *UserService) DeleteAvatar(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if u.AvatarURL != "" && s.GCS != nil && s.GCSBucket != "" {
		prefix := helpers.PublicURL(s.GCSBucket, "")
		if strings.HasPrefix(u.AvatarURL, prefix) {
			objectPath := strings.TrimPrefix(u.AvatarURL, prefix)
			if dErr := helpers.DeleteObject(ctx, s.GCS, s.GCSBucket, objectPath); dErr != nil && s.Logger != nil {
				s.Logger.WithError(dErr).WithField("user_id", userID).Warn("avatar object delete failed")
			}
		}
	}
	return s.Repo.SetAvatarURL(ctx, userID, "")
}
