package application

import (
	"context"
	"errors"
	"testing"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
	"github.com/pawkeeper/notices-api/internal/domain/repository"
)

// stubNoticeRepo serves ListByIDs from a fixed map; the rest is unused here.
type stubNoticeRepo struct {
	notices map[string]*entity.Notice
}

func (s *stubNoticeRepo) Create(ctx context.Context, n *entity.Notice) error { return nil }
func (s *stubNoticeRepo) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	n, ok := s.notices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return n, nil
}
func (s *stubNoticeRepo) ListByCategory(ctx context.Context, categoryName string) ([]*entity.Notice, error) {
	return nil, nil
}
func (s *stubNoticeRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Notice, error) {
	return nil, nil
}
func (s *stubNoticeRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Notice, error) {
	out := make([]*entity.Notice, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.notices[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}
func (s *stubNoticeRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	return nil
}
func (s *stubNoticeRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return nil, nil
}

var _ repository.NoticeRepository = (*stubNoticeRepo)(nil)

func seedFavoriteUser(t *testing.T, repo *memUserRepo) string {
	t.Helper()
	u := &entity.User{Email: "fav@example.com", Password: "irrelevant"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func TestAddFavoriteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uid := seedFavoriteUser(t, repo)
	svc := NewFavoriteService(repo, &stubNoticeRepo{}, nil)

	if err := svc.Add(ctx, uid, "notice-1"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.Add(ctx, uid, "notice-1"); err != nil {
		t.Fatalf("second add: %v", err)
	}

	ids, err := svc.List(ctx, uid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "notice-1" {
		t.Fatalf("favorites = %v, want exactly one notice-1", ids)
	}
}

func TestRemoveFavoriteAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uid := seedFavoriteUser(t, repo)
	svc := NewFavoriteService(repo, &stubNoticeRepo{}, nil)

	if err := svc.Add(ctx, uid, "notice-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, uid, "never-added"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}

	ids, err := svc.List(ctx, uid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "notice-1" {
		t.Fatalf("favorites = %v, want unchanged [notice-1]", ids)
	}
}

func TestRemoveFavorite(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uid := seedFavoriteUser(t, repo)
	svc := NewFavoriteService(repo, &stubNoticeRepo{}, nil)

	if err := svc.Add(ctx, uid, "notice-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, uid, "notice-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	ids, err := svc.List(ctx, uid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("favorites = %v, want empty", ids)
	}
}

func TestFavoriteEmptyNoticeIDRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uid := seedFavoriteUser(t, repo)
	svc := NewFavoriteService(repo, &stubNoticeRepo{}, nil)

	if err := svc.Add(ctx, uid, ""); !errors.Is(err, ErrMissingNoticeID) {
		t.Fatalf("add empty id err = %v, want ErrMissingNoticeID", err)
	}
	if err := svc.Remove(ctx, uid, ""); !errors.Is(err, ErrMissingNoticeID) {
		t.Fatalf("remove empty id err = %v, want ErrMissingNoticeID", err)
	}
	if repo.addFavoriteCalls != 0 || repo.removeFavoriteCalls != 0 {
		t.Fatalf("store was touched: add=%d remove=%d", repo.addFavoriteCalls, repo.removeFavoriteCalls)
	}
}

func TestListFavoritesUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoriteService(newMemUserRepo(), &stubNoticeRepo{}, nil)

	if _, err := svc.List(ctx, "user-missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("list err = %v, want ErrUserNotFound", err)
	}
}

func TestListFavoriteNotices(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uid := seedFavoriteUser(t, repo)
	notices := &stubNoticeRepo{notices: map[string]*entity.Notice{
		"notice-1": {ID: "notice-1", Title: "lost cat"},
		"notice-2": {ID: "notice-2", Title: "puppy to a good home"},
	}}
	svc := NewFavoriteService(repo, notices, nil)

	for _, id := range []string{"notice-1", "notice-2"} {
		if err := svc.Add(ctx, uid, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	got, err := svc.ListNotices(ctx, uid)
	if err != nil {
		t.Fatalf("list notices: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notices, want 2", len(got))
	}
}
