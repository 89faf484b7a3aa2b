package postgres

import (
	"context"

	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userCacheRepo struct {
	db *pgxpool.Pool
}

func newUserCacheRepo(db *pgxpool.Pool) UserCache {
	return &userCacheRepo{
		db: db,
	}
}

func (r *userCacheRepo) Upsert(ctx context.Context, user model.SessionUser) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO cached_users(id, email, display_name, photo_url) VALUES($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET email = $2, display_name = $3, photo_url = $4`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PhotoURL,
	)
	return err
}

func (r *userCacheRepo) FindByID(ctx context.Context, id string) (*model.SessionUser, error) {
	var user model.SessionUser
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.email, u.display_name, u.photo_url FROM cached_users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PhotoURL,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
