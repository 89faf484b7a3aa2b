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
	"go.uber.org/zap"
)

const commentPreviewLen = 10

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     rabbitmq.Publisher
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

// Add appends the comment to the post's embedded sequence. When someone
// comments on another user's post, the author gets a notification whose
// content ends in a preview of the post body.
func (s *commentService) Add(ctx context.Context, user *model.SessionUser, postID string, req dto.CreateCommentRequest) (*model.Comment, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", postID, err.Error())
		return nil, ErrPostNotFound
	}

	comment := model.Comment{
		Comment:   req.Comment,
		UID:       user.ID,
		Email:     user.Email,
		CreatedAt: model.FormatCreatedAt(time.Now()),
	}

	if err := s.repo.Postgres.Post.AddComment(ctx, postID, comment); err != nil {
		s.logger.Sugar().Errorf("failed to add comment to post(%s): %s", postID, err.Error())
		return nil, ErrInternal
	}

	invalidateFeeds(ctx, s.logger, s.repo)

	if user.ID != post.UID {
		s.publishNotification(dto.MQNotificationMsg{
			UID:       post.UID,
			Content:   fmt.Sprintf("New comment on %s", truncateContent(post.Content)),
			URL:       "/posts/" + postID,
			CreatedAt: model.FormatCreatedAt(time.Now()),
		})
	}

	return &comment, nil
}

// Remove deletes the element equal to comment by full value. A comment
// that is already gone is a silent no-op. Only the comment's author may
// remove it.
func (s *commentService) Remove(ctx context.Context, user *model.SessionUser, postID string, comment model.Comment) error {
	if comment.UID != user.ID {
		return ErrForbidden
	}

	if err := s.repo.Postgres.Post.RemoveComment(ctx, postID, comment); err != nil {
		s.logger.Sugar().Errorf("failed to remove comment from post(%s): %s", postID, err.Error())
		return ErrInternal
	}

	invalidateFeeds(ctx, s.logger, s.repo)

	return nil
}

func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLen {
		return content
	}
	return string(runes[:commentPreviewLen]) + "..."
}

func (s *commentService) publishNotification(msg dto.MQNotificationMsg) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal notification message: %s", err.Error())
		return
	}

	if err := s.mq.Publish(rabbitmq.NOTIFICATIONS_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish notification for user(%s): %s", msg.UID, err.Error())
	}
}
