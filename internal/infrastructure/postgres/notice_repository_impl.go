package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
	"github.com/pawkeeper/notices-api/internal/domain/repository"
)

type NoticeRepository struct {
	pool *pgxpool.Pool
}

func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

const noticeColumns = `id, owner_id, category_name, title, description, location, price, image_url, created_at, updated_at`

func scanNotice(row pgx.Row) (*entity.Notice, error) {
	n := &entity.Notice{}
	if err := row.Scan(&n.ID, &n.OwnerID, &n.CategoryName, &n.Title, &n.Description,
		&n.Location, &n.Price, &n.ImageURL, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NoticeRepository) Create(ctx context.Context, n *entity.Notice) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notices (owner_id, category_name, title, description, location, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, n.OwnerID, n.CategoryName, n.Title, n.Description, n.Location, n.Price, n.ImageURL)

	return row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NoticeRepository) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	return scanNotice(r.pool.QueryRow(ctx, `
		SELECT `+noticeColumns+`
		FROM notices
		WHERE id = $1
	`, id))
}

func (r *NoticeRepository) listRows(rows pgx.Rows) ([]*entity.Notice, error) {
	defer rows.Close()
	out := make([]*entity.Notice, 0)
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoticeRepository) ListByCategory(ctx context.Context, categoryName string) ([]*entity.Notice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noticeColumns+`
		FROM notices
		WHERE category_name = $1
		ORDER BY created_at DESC
	`, categoryName)
	if err != nil {
		return nil, err
	}
	return r.listRows(rows)
}

func (r *NoticeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Notice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noticeColumns+`
		FROM notices
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return r.listRows(rows)
}

func (r *NoticeRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Notice, error) {
	if len(ids) == 0 {
		return []*entity.Notice{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+noticeColumns+`
		FROM notices
		WHERE id = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	return r.listRows(rows)
}

func (r *NoticeRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM notices
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NoticeRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Category, 0)
	for rows.Next() {
		c := &entity.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.NoticeRepository = (*NoticeRepository)(nil)
