package repository

import (
	"context"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create must surface ErrDuplicateEmail on a unique-constraint violation.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, u *entity.User) error
	// SetSessionToken persists the user's single active token.
	// nil logs the user out; a new value supersedes any previous token.
	SetSessionToken(ctx context.Context, id string, token *string) error
	SetAvatarURL(ctx context.Context, id string, avatarURL string) error

	// Favorites relation. Add and Remove are atomic set operations so
	// concurrent mutations of the same user's set cannot lose writes.
	AddFavorite(ctx context.Context, userID, noticeID string) error
	RemoveFavorite(ctx context.Context, userID, noticeID string) error
	ListFavoriteIDs(ctx context.Context, userID string) ([]string, error)
}
