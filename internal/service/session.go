package service

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hyeonKii/SocialService/internal/authprovider"
	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/repository/redisrepo"
	"github.com/hyeonKii/SocialService/internal/storage"
	"github.com/hyeonKii/SocialService/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type sessionService struct {
	logger *zap.Logger
	repo   *repository.Repository
	auth   *authprovider.Client
	store  storage.Storage
}

func newSessionService(logger *zap.Logger, repo *repository.Repository, auth *authprovider.Client, store storage.Storage) Session {
	return &sessionService{
		logger: logger,
		repo:   repo,
		auth:   auth,
		store:  store,
	}
}

func (s *sessionService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.TokenResponse, error) {
	accessToken, user, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)

	return &dto.TokenResponse{AccessToken: accessToken, User: *user}, nil
}

func (s *sessionService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	accessToken, user, err := s.auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)

	return &dto.TokenResponse{AccessToken: accessToken, User: *user}, nil
}

func (s *sessionService) SignInWithProvider(ctx context.Context, provider string, req dto.ProviderSignInRequest) (*dto.TokenResponse, error) {
	accessToken, user, err := s.auth.SignInWithProvider(ctx, provider, req.IDToken)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)

	return &dto.TokenResponse{AccessToken: accessToken, User: *user}, nil
}

// ResolveToken turns a bearer token into the session user, fetching the
// profile from the auth provider the first time it is seen.
func (s *sessionService) ResolveToken(ctx context.Context, accessToken string) (*model.SessionUser, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, ErrForbidden
	}

	user, err := s.findByID(ctx, idString)
	if err == nil {
		return user, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	fetchedUser, err := s.auth.FetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, fetchedUser)

	return fetchedUser, nil
}

func (s *sessionService) findByID(ctx context.Context, id string) (*model.SessionUser, error) {
	cachedUser, err := redisrepo.Get[model.SessionUser](s.repo.Redis.Default, ctx, redisrepo.UserCacheKey(id))
	if err == nil && cachedUser != nil {
		return cachedUser, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get cached user(%s) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.UserCache.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		s.logger.Sugar().Errorf("failed to get cached user(%s) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserCacheKey(id), user, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id, err.Error())
	}

	return user, nil
}

func (s *sessionService) cacheUser(ctx context.Context, user *model.SessionUser) {
	if err := s.repo.Postgres.UserCache.Upsert(ctx, *user); err != nil {
		s.logger.Sugar().Errorf("failed to upsert cached user(%s): %s", user.ID, err.Error())
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserCacheKey(user.ID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached user(%s) from redis: %s", user.ID, err.Error())
	}
}

// UpdateProfile pushes changes to the auth provider and refreshes the
// local cache. A replaced avatar that lives in our blob storage is
// deleted best-effort first.
func (s *sessionService) UpdateProfile(ctx context.Context, user *model.SessionUser, accessToken string, req dto.UpdateProfileRequest) (*model.SessionUser, error) {
	fields := make(map[string]interface{})

	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
		user.DisplayName = *req.DisplayName
	}

	if req.PhotoDataURL != nil {
		if user.PhotoURL != "" {
			if err := s.store.Delete(user.PhotoURL); err != nil {
				s.logger.Sugar().Errorf("failed to delete old avatar of user(%s): %s", user.ID, err.Error())
			}
		}

		photoURL := ""
		if *req.PhotoDataURL != "" {
			key := user.ID + "/" + uuid.NewString()
			uploadedURL, err := s.store.UploadDataURL(key, *req.PhotoDataURL)
			if err != nil {
				s.logger.Sugar().Errorf("failed to upload avatar for user(%s): %s", user.ID, err.Error())
				return nil, ErrFailedToUploadImage
			}
			photoURL = uploadedURL
		}
		fields["photo_url"] = photoURL
		user.PhotoURL = photoURL
	}

	if len(fields) == 0 {
		return user, nil
	}

	if err := s.auth.UpdateProfile(ctx, accessToken, fields); err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)

	return user, nil
}
