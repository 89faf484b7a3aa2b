package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/storage"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	store  storage.Storage
}

func newPostService(logger *zap.Logger, repo *repository.Repository, store storage.Storage) Post {
	return &postService{
		logger: logger,
		repo:   repo,
		store:  store,
	}
}

func (s *postService) Create(ctx context.Context, user *model.SessionUser, req dto.CreatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var imageURL string
	if req.ImageDataURL != "" {
		url, err := s.uploadImage(user.ID, req.ImageDataURL)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	post := model.Post{
		UID:        user.ID,
		Email:      user.Email,
		Content:    req.Content,
		CreatedAt:  model.FormatCreatedAt(time.Now()),
		ProfileURL: user.PhotoURL,
		HashTags:   req.HashTags,
		ImageURL:   imageURL,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", user.ID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateFeeds(ctx)

	return createdPost, nil
}

func (s *postService) uploadImage(uid string, dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", ErrImageMustBeDataURL
	}

	key := uid + "/" + uuid.NewString()
	url, err := s.store.UploadDataURL(key, dataURL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upload image for user(%s): %s", uid, err.Error())
		return "", ErrFailedToUploadImage
	}

	return url, nil
}

func (s *postService) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) Edit(ctx context.Context, user *model.SessionUser, id string, req dto.EditPostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UID != user.ID {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.HashTags != nil {
		updates["hash_tags"] = req.HashTags
	}
	if req.ImageDataURL != nil {
		// The previous image is orphaned once replaced; deleting it is
		// best-effort and never blocks the edit.
		if post.ImageURL != "" {
			if err := s.store.Delete(post.ImageURL); err != nil {
				s.logger.Sugar().Errorf("failed to delete old image of post(%s): %s", id, err.Error())
			}
		}

		imageURL := ""
		if *req.ImageDataURL != "" {
			imageURL, err = s.uploadImage(user.ID, *req.ImageDataURL)
			if err != nil {
				return nil, err
			}
		}
		updates["image_url"] = imageURL
	}

	if err := s.repo.Postgres.Post.Update(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update post(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.invalidateFeeds(ctx)

	return s.FindByID(ctx, id)
}

// Delete expects the confirmation gate to have run upstream. The blob
// image goes first, best-effort; the record delete proceeds regardless.
func (s *postService) Delete(ctx context.Context, user *model.SessionUser, id string) error {
	post, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UID != user.ID {
		return ErrForbidden
	}

	if post.ImageURL != "" {
		if err := s.store.Delete(post.ImageURL); err != nil {
			s.logger.Sugar().Errorf("failed to delete image of post(%s): %s", id, err.Error())
		}
	}

	if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidateFeeds(ctx)

	return nil
}

// ToggleLike delegates to a single-statement update so the liker set and
// the counter always move together; last write wins between viewers.
func (s *postService) ToggleLike(ctx context.Context, id string, uid string) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.ToggleLike(ctx, id, uid)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to toggle like on post(%s) by user(%s): %s", id, uid, err.Error())
		return nil, ErrInternal
	}

	s.invalidateFeeds(ctx)

	return post, nil
}

// invalidateFeeds drops every cached feed and tag search and nudges the
// live watchers to re-emit.
func (s *postService) invalidateFeeds(ctx context.Context) {
	invalidateFeeds(ctx, s.logger, s.repo)
}
