package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
	"github.com/pawkeeper/notices-api/internal/domain/repository"
)

// uniqueViolation is the Postgres error code for unique-constraint conflicts.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, address, phone, birthday, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.Address, u.Phone, u.Birthday, u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const userColumns = `id, email, password_hash, name, address, phone, birthday, avatar_url, session_token, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Address, &u.Phone,
		&u.Birthday, &u.AvatarURL, &u.SessionToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, name = $2, address = $3, phone = $4, birthday = $5, updated_at = $6
		WHERE id = $7
	`, u.Email, u.Name, u.Address, u.Phone, u.Birthday, u.UpdatedAt, u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetSessionToken(ctx context.Context, id string, token *string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET session_token = $1, updated_at = now()
		WHERE id = $2
	`, token, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetAvatarURL(ctx context.Context, id string, avatarURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET avatar_url = $1, updated_at = now()
		WHERE id = $2
	`, avatarURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddFavorite inserts into the favorites set. ON CONFLICT DO NOTHING makes the
// insert an atomic set-add: re-adding is a silent success and concurrent adds
// for the same user cannot clobber each other.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, noticeID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_favorites (user_id, notice_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, notice_id) DO NOTHING
	`, userID, noticeID)
	return err
}

// RemoveFavorite deletes from the favorites set. Removing an absent id is a
// no-op by the same atomicity argument as AddFavorite.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, noticeID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_favorites
		WHERE user_id = $1 AND notice_id = $2
	`, userID, noticeID)
	return err
}

func (r *UserRepository) ListFavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT notice_id
		FROM user_favorites
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
