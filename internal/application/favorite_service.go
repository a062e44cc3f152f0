package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
	"github.com/pawkeeper/notices-api/internal/domain/repository"
)

// ErrMissingNoticeID is rejected before any store access.
var ErrMissingNoticeID = errors.New("missing notice id")

// FavoriteService maintains the many-to-many relation between users and the
// notices they favorited. Add and Remove are idempotent; whether the notice
// itself exists is the caller's concern.
type FavoriteService struct {
	Users   repository.UserRepository
	Notices repository.NoticeRepository
	Logger  *logrus.Logger
}

func NewFavoriteService(users repository.UserRepository, notices repository.NoticeRepository, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{Users: users, Notices: notices, Logger: logger}
}

// List returns the ids of the user's favorited notices in insertion order.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}
	return s.Users.ListFavoriteIDs(ctx, userID)
}

// ListNotices resolves the favorite set to full notice records.
func (s *FavoriteService) ListNotices(ctx context.Context, userID string) ([]*entity.Notice, error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Notices.ListByIDs(ctx, ids)
}

// Add inserts the notice id into the user's favorite set. Re-adding an id
// already in the set is a silent success.
func (s *FavoriteService) Add(ctx context.Context, userID, noticeID string) error {
	if noticeID == "" {
		return ErrMissingNoticeID
	}
	return s.Users.AddFavorite(ctx, userID, noticeID)
}

// Remove deletes the notice id from the user's favorite set. Removing an id
// that was never favorited succeeds and leaves the set unchanged.
func (s *FavoriteService) Remove(ctx context.Context, userID, noticeID string) error {
	if noticeID == "" {
		return ErrMissingNoticeID
	}
	return s.Users.RemoveFavorite(ctx, userID, noticeID)
}
