package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/rabbitmq"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/repository/redisrepo"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type notificationService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository) Notification {
	return &notificationService{
		logger: logger,
		repo:   repo,
	}
}

func (s *notificationService) FindMy(ctx context.Context, uid string) ([]*model.Notification, error) {
	cached, err := redisrepo.GetMany[model.Notification](s.repo.Redis.Default, ctx, redisrepo.NotificationsKey(uid))
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get notifications of user(%s) from redis: %s", uid, err.Error())
		return nil, ErrInternal
	}

	notifications, err := s.repo.Postgres.Notification.FindByRecipient(ctx, uid)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find notifications of user(%s) from postgres: %s", uid, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.NotificationsKey(uid), notifications, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set notifications of user(%s) in redis: %s", uid, err.Error())
		return nil, ErrInternal
	}

	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string, uid string) error {
	if err := s.repo.Postgres.Notification.MarkRead(ctx, id, uid); err != nil {
		s.logger.Sugar().Errorf("failed to mark notification(%s) read: %s", id, err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.NotificationsKey(uid)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete notifications of user(%s) from redis: %s", uid, err.Error())
	}

	return nil
}

// consumeNotifications persists notification events coming off the
// queue until ctx is done or the delivery channel closes; the emitting
// side never reads them back.
func (s *notificationService) consumeNotifications(ctx context.Context, mq rabbitmq.Consumer) {
	queue := rabbitmq.NOTIFICATIONS_QUEUE
	msgs, err := mq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consume from queue(%s): %s", queue, err.Error())
	}

	for {
		var msg amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			return
		case msg, ok = <-msgs:
			if !ok {
				return
			}
		}

		var data dto.MQNotificationMsg
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		if data.UID == "" {
			s.logger.Sugar().Errorf("'uid' field is not provided")
			msg.Nack(false, false)
			continue
		}

		notification := model.Notification{
			UID:       data.UID,
			Content:   data.Content,
			URL:       data.URL,
			CreatedAt: data.CreatedAt,
		}
		if _, err := s.repo.Postgres.Notification.Create(ctx, notification); err != nil {
			s.logger.Sugar().Errorf("failed to create notification for user(%s): %s", data.UID, err.Error())
			msg.Nack(false, true)
			continue
		}

		if err := s.repo.Redis.Default.Del(ctx, redisrepo.NotificationsKey(data.UID)).Err(); err != nil {
			s.logger.Sugar().Errorf("failed to delete notifications of user(%s) from redis: %s", data.UID, err.Error())
		}

		msg.Ack(false)
	}
}
