package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/rabbitmq"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type relationshipService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     rabbitmq.Publisher
}

func newRelationshipService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Relationship {
	return &relationshipService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

// Follow issues the two adjacency writes in a fixed order: following
// first, follower second. There is no transaction across them; a crash
// in between leaves a one-directional edge, same as the system this one
// replaces. Following yourself is allowed but emits no notification.
func (s *relationshipService) Follow(ctx context.Context, self *model.SessionUser, targetID string) error {
	if err := s.repo.Postgres.Relationship.AddFollowing(ctx, self.ID, targetID); err != nil {
		s.logger.Sugar().Errorf("failed to add target(%s) to user(%s) following: %s", targetID, self.ID, err.Error())
		return ErrInternal
	}

	if err := s.repo.Postgres.Relationship.AddFollower(ctx, targetID, self.ID); err != nil {
		s.logger.Sugar().Errorf("failed to add user(%s) to target(%s) followers: %s", self.ID, targetID, err.Error())
		return ErrInternal
	}

	s.invalidate(ctx, self.ID, targetID)

	if self.ID != targetID {
		actor := self.Email
		if actor == "" {
			actor = self.DisplayName
		}
		s.publishNotification(dto.MQNotificationMsg{
			UID:       targetID,
			Content:   fmt.Sprintf("%s started following you", actor),
			URL:       "#",
			CreatedAt: model.FormatCreatedAt(time.Now()),
		})
	}

	return nil
}

// Unfollow removes the edge from both records; peers that are already
// absent stay absent and the records themselves persist.
func (s *relationshipService) Unfollow(ctx context.Context, selfID string, targetID string) error {
	if err := s.repo.Postgres.Relationship.RemoveFollowing(ctx, selfID, targetID); err != nil {
		s.logger.Sugar().Errorf("failed to remove target(%s) from user(%s) following: %s", targetID, selfID, err.Error())
		return ErrInternal
	}

	if err := s.repo.Postgres.Relationship.RemoveFollower(ctx, targetID, selfID); err != nil {
		s.logger.Sugar().Errorf("failed to remove user(%s) from target(%s) followers: %s", selfID, targetID, err.Error())
		return ErrInternal
	}

	s.invalidate(ctx, selfID, targetID)

	return nil
}

// IsFollowing tests membership against the follower record of the
// target, the same snapshot the legacy client watched.
func (s *relationshipService) IsFollowing(ctx context.Context, selfID string, targetID string) (bool, error) {
	followers, err := s.followers(ctx, targetID)
	if err != nil {
		return false, err
	}

	for _, id := range followers {
		if id == selfID {
			return true, nil
		}
	}

	return false, nil
}

func (s *relationshipService) followers(ctx context.Context, targetID string) ([]string, error) {
	cached, err := redisrepo.Get[[]string](s.repo.Redis.Default, ctx, redisrepo.FollowersKey(targetID))
	if err == nil && cached != nil {
		return *cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get followers of user(%s) from redis: %s", targetID, err.Error())
		return nil, ErrInternal
	}

	followers, err := s.repo.Postgres.Relationship.Followers(ctx, targetID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followers of user(%s): %s", targetID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.FollowersKey(targetID), followers, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set followers of user(%s) in redis: %s", targetID, err.Error())
	}

	return followers, nil
}

// FollowerStream emits the full follower-id set of one user; every
// emission replaces the previous set entirely.
type FollowerStream struct {
	C <-chan []string

	sub redisrepo.Subscription
}

func (s *FollowerStream) Close() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Close()
}

func (s *relationshipService) WatchFollowers(ctx context.Context, targetID string) (*FollowerStream, error) {
	sub := s.repo.Redis.Default.Subscribe(ctx, redisrepo.FollowerChannel(targetID))
	out := make(chan []string, 1)

	initial, err := s.followers(ctx, targetID)
	if err != nil {
		sub.Close()
		return nil, err
	}
	out <- initial

	go func() {
		defer close(out)
		for range sub.Channel() {
			snapshot, err := s.followers(ctx, targetID)
			if err != nil {
				continue
			}
			select {
			case <-out:
			default:
			}
			out <- snapshot
		}
	}()

	return &FollowerStream{C: out, sub: sub}, nil
}

func (s *relationshipService) invalidate(ctx context.Context, selfID string, targetID string) {
	keys := []string{
		redisrepo.FollowersKey(targetID),
		redisrepo.FeedKey(ScopeFollowing, selfID),
	}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate relationship keys for user(%s): %s", selfID, err.Error())
	}

	if err := s.repo.Redis.Default.Publish(ctx, redisrepo.FollowerChannel(targetID), targetID).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to publish follower change for user(%s): %s", targetID, err.Error())
	}

	// A changed author set re-filters open following feeds just like a
	// post mutation does.
	if err := s.repo.Redis.Default.Publish(ctx, redisrepo.POSTS_CHANNEL, "changed").Err(); err != nil {
		s.logger.Sugar().Errorf("failed to publish posts change for user(%s): %s", selfID, err.Error())
	}
}

func (s *relationshipService) publishNotification(msg dto.MQNotificationMsg) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal notification message: %s", err.Error())
		return
	}

	if err := s.mq.Publish(rabbitmq.NOTIFICATIONS_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish notification for user(%s): %s", msg.UID, err.Error())
	}
}
