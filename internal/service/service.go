package service

import (
	"context"

	"github.com/hyeonKii/SocialService/internal/authprovider"
	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/rabbitmq"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/storage"
	"go.uber.org/zap"
)

type Session interface {
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.TokenResponse, error)
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.TokenResponse, error)
	SignInWithProvider(ctx context.Context, provider string, req dto.ProviderSignInRequest) (*dto.TokenResponse, error)
	ResolveToken(ctx context.Context, accessToken string) (*model.SessionUser, error)
	UpdateProfile(ctx context.Context, user *model.SessionUser, accessToken string, req dto.UpdateProfileRequest) (*model.SessionUser, error)
}

type Relationship interface {
	Follow(ctx context.Context, self *model.SessionUser, targetID string) error
	Unfollow(ctx context.Context, selfID string, targetID string) error
	IsFollowing(ctx context.Context, selfID string, targetID string) (bool, error)
	WatchFollowers(ctx context.Context, targetID string) (*FollowerStream, error)
}

type Feed interface {
	Compose(ctx context.Context, scope string, viewerID string) ([]*model.Post, error)
	SearchByTag(ctx context.Context, tag string) ([]*model.Post, error)
	Watch(ctx context.Context, scope string, viewerID string) (*FeedStream, error)
}

type Post interface {
	Create(ctx context.Context, user *model.SessionUser, req dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	Edit(ctx context.Context, user *model.SessionUser, id string, req dto.EditPostRequest) (*model.Post, error)
	Delete(ctx context.Context, user *model.SessionUser, id string) error
	ToggleLike(ctx context.Context, id string, uid string) (*model.Post, error)
}

type Comment interface {
	Add(ctx context.Context, user *model.SessionUser, postID string, req dto.CreateCommentRequest) (*model.Comment, error)
	Remove(ctx context.Context, user *model.SessionUser, postID string, comment model.Comment) error
}

type Notification interface {
	FindMy(ctx context.Context, uid string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string, uid string) error
}

type Service struct {
	Session
	Relationship
	Feed
	Post
	Comment
	Notification
}

func New(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher, store storage.Storage, auth *authprovider.Client) *Service {
	return &Service{
		Session:      newSessionService(logger, repo, auth, store),
		Relationship: newRelationshipService(logger, repo, mq),
		Feed:         newFeedService(logger, repo),
		Post:         newPostService(logger, repo, store),
		Comment:      newCommentService(logger, repo, mq),
		Notification: newNotificationService(logger, repo),
	}
}

// StartConsumeAll runs the queue consumers until ctx is done.
func (s *Service) StartConsumeAll(ctx context.Context, mq rabbitmq.Consumer) {
	s.Notification.(*notificationService).consumeNotifications(ctx, mq)
}
