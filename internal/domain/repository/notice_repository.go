package repository

import (
	"context"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
)

// NoticeRepository defines the interface for notice-related database operations.
type NoticeRepository interface {
	Create(ctx context.Context, n *entity.Notice) error
	GetByID(ctx context.Context, id string) (*entity.Notice, error)
	ListByCategory(ctx context.Context, categoryName string) ([]*entity.Notice, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Notice, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Notice, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
	ListCategories(ctx context.Context) ([]*entity.Category, error)
}
