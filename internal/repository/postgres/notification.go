package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	notification.ID = uuid.NewString()
	notification.IsRead = false

	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO notifications(id, uid, content, url, is_read, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		notification.ID,
		notification.UID,
		notification.Content,
		notification.URL,
		notification.IsRead,
		notification.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *notificationRepo) FindByRecipient(ctx context.Context, uid string) ([]*model.Notification, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id, uid, content, url, is_read, created_at FROM notifications WHERE uid = $1 ORDER BY created_at DESC",
		uid,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UID, &n.Content, &n.URL, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string, uid string) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND uid = $2",
		id,
		uid,
	)
	return err
}
