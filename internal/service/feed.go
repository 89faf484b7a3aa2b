package service

import (
	"context"
	"sort"
	"time"

	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ScopeAll       = "all"
	ScopeFollowing = "following"
)

// ComposeFeed orders posts newest-first and, for the following scope,
// keeps only posts authored by someone in followingIDs. The sort key is
// the legacy created-at string, compared as-is; ties keep arrival order.
// An empty followingIDs yields an empty following feed, and the ""
// sentinel the legacy client seeds the set with matches no real post.
func ComposeFeed(scope string, viewerID string, followingIDs []string, posts []*model.Post) []*model.Post {
	result := make([]*model.Post, 0, len(posts))

	switch scope {
	case ScopeFollowing:
		authors := make(map[string]struct{}, len(followingIDs))
		for _, id := range followingIDs {
			authors[id] = struct{}{}
		}
		for _, post := range posts {
			if post.UID == "" {
				continue
			}
			if _, ok := authors[post.UID]; ok {
				result = append(result, post)
			}
		}
	default:
		result = append(result, posts...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})

	return result
}

// FilterByTag keeps posts whose hashtag list contains tag exactly
// (case-sensitive), newest first. An empty tag matches nothing.
func FilterByTag(tag string, posts []*model.Post) []*model.Post {
	result := make([]*model.Post, 0)
	if tag == "" {
		return result
	}

	for _, post := range posts {
		for _, t := range post.HashTags {
			if t == tag {
				result = append(result, post)
				break
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})

	return result
}

// invalidateFeeds drops all cached feed compositions and tag searches,
// then signals watchers through the posts channel so they re-emit.
func invalidateFeeds(ctx context.Context, logger *zap.Logger, repo *repository.Repository) {
	for _, pattern := range []string{"feed:*", "tag-search:*"} {
		keys, err := repo.Redis.Default.Keys(ctx, pattern).Result()
		if err != nil {
			logger.Sugar().Errorf("failed to list cache keys(%s): %s", pattern, err.Error())
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
			logger.Sugar().Errorf("failed to delete cache keys(%s): %s", pattern, err.Error())
		}
	}

	if err := repo.Redis.Default.Publish(ctx, redisrepo.POSTS_CHANNEL, "changed").Err(); err != nil {
		logger.Sugar().Errorf("failed to publish posts change: %s", err.Error())
	}
}

type feedService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFeedService(logger *zap.Logger, repo *repository.Repository) Feed {
	return &feedService{
		logger: logger,
		repo:   repo,
	}
}

func (s *feedService) Compose(ctx context.Context, scope string, viewerID string) ([]*model.Post, error) {
	if scope != ScopeAll && scope != ScopeFollowing {
		return nil, ErrUnknownFeedScope
	}

	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.FeedKey(scope, viewerID))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get feed(%s) for viewer(%s) from redis: %s", scope, viewerID, err.Error())
		return nil, ErrInternal
	}

	posts, err := s.compose(ctx, scope, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.FeedKey(scope, viewerID), posts, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set feed(%s) for viewer(%s) in redis: %s", scope, viewerID, err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *feedService) compose(ctx context.Context, scope string, viewerID string) ([]*model.Post, error) {
	allPosts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	var followingIDs []string
	if scope == ScopeFollowing {
		followingIDs, err = s.followingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return ComposeFeed(scope, viewerID, followingIDs, allPosts), nil
}

// followingIDs mirrors the legacy client, which seeds the set with an
// empty-string placeholder before the snapshot arrives.
func (s *feedService) followingIDs(ctx context.Context, viewerID string) ([]string, error) {
	ids, err := s.repo.Postgres.Relationship.Following(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find following ids for user(%s): %s", viewerID, err.Error())
		return nil, ErrInternal
	}

	return append([]string{""}, ids...), nil
}

func (s *feedService) SearchByTag(ctx context.Context, tag string) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.TagSearchKey(tag))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get tag(%s) search from redis: %s", tag, err.Error())
		return nil, ErrInternal
	}

	allPosts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	posts := FilterByTag(tag, allPosts)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.TagSearchKey(tag), posts, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set tag(%s) search in redis: %s", tag, err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

// FeedStream delivers full feed snapshots; every emission replaces the
// prior one and must not be merged into it.
type FeedStream struct {
	C <-chan []*model.Post

	sub redisrepo.Subscription
}

func (s *FeedStream) Close() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Close()
}

func (s *feedService) Watch(ctx context.Context, scope string, viewerID string) (*FeedStream, error) {
	if scope != ScopeAll && scope != ScopeFollowing {
		return nil, ErrUnknownFeedScope
	}

	sub := s.repo.Redis.Default.Subscribe(ctx, redisrepo.POSTS_CHANNEL)
	out := make(chan []*model.Post, 1)

	initial, err := s.compose(ctx, scope, viewerID)
	if err != nil {
		sub.Close()
		return nil, err
	}
	out <- initial

	go func() {
		defer close(out)
		for range sub.Channel() {
			snapshot, err := s.compose(ctx, scope, viewerID)
			if err != nil {
				s.logger.Sugar().Errorf("failed to recompose feed(%s) for viewer(%s): %s", scope, viewerID, err.Error())
				continue
			}
			// A newer snapshot supersedes an unconsumed one.
			select {
			case <-out:
			default:
			}
			out <- snapshot
		}
	}()

	return &FeedStream{C: out, sub: sub}, nil
}
