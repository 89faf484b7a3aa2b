package postgres

import (
	"context"
	"fmt"

	"github.com/hyeonKii/SocialService/internal/config"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string, uid string) (*model.Post, error)
	AddComment(ctx context.Context, id string, comment model.Comment) error
	RemoveComment(ctx context.Context, id string, comment model.Comment) error
}

type Relationship interface {
	AddFollowing(ctx context.Context, uid string, peerID string) error
	AddFollower(ctx context.Context, uid string, peerID string) error
	RemoveFollowing(ctx context.Context, uid string, peerID string) error
	RemoveFollower(ctx context.Context, uid string, peerID string) error
	Following(ctx context.Context, uid string) ([]string, error)
	Followers(ctx context.Context, uid string) ([]string, error)
}

type Notification interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	FindByRecipient(ctx context.Context, uid string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string, uid string) error
}

type UserCache interface {
	Upsert(ctx context.Context, user model.SessionUser) error
	FindByID(ctx context.Context, id string) (*model.SessionUser, error)
}

type PostgresRepository struct {
	Post
	Relationship
	Notification
	UserCache
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:         newPostRepo(db),
		Relationship: newRelationshipRepo(db),
		Notification: newNotificationRepo(db),
		UserCache:    newUserCacheRepo(db),
	}
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)

	return pgxpool.New(ctx, dsn)
}
