package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/repository"
	"github.com/hyeonKii/SocialService/internal/repository/postgres"
	"github.com/hyeonKii/SocialService/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// fakeRedis always misses on reads so services hit the fake Postgres
// repos; it records invalidations and pub/sub traffic.
type fakeRedis struct {
	mu        sync.Mutex
	deleted   []string
	published []string
	subs      map[string]*fakeSubscription
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{subs: make(map[string]*fakeSubscription)}
}

func (r *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (r *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (r *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (r *fakeRedis) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(nil, nil)
}

func (r *fakeRedis) Publish(ctx context.Context, channel string, payload interface{}) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, channel)
	if sub, ok := r.subs[channel]; ok {
		sub.messages <- &redis.Message{Channel: channel}
	}
	return redis.NewIntResult(1, nil)
}

func (r *fakeRedis) Subscribe(ctx context.Context, channel string) redisrepo.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := &fakeSubscription{messages: make(chan *redis.Message, 16)}
	r.subs[channel] = sub
	return sub
}

type fakeSubscription struct {
	messages  chan *redis.Message
	closeOnce sync.Once
}

func (s *fakeSubscription) Channel() <-chan *redis.Message {
	return s.messages
}

func (s *fakeSubscription) Close() error {
	s.closeOnce.Do(func() { close(s.messages) })
	return nil
}

type fakeStorage struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (s *fakeStorage) UploadDataURL(key string, dataURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://blobs.test/" + key
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeStorage) Delete(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published [][]byte
}

func (p *fakePublisher) Publish(queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, body)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

// fakePostRepo keeps posts in memory with the same update semantics the
// SQL statements have.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	order []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = uuid.NewString()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	stored := post
	r.posts[post.ID] = &stored
	r.order = append(r.order, post.ID)
	return &post, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := make([]*model.Post, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.posts[id]
		posts = append(posts, &copied)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

func (r *fakePostRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if content, ok := updates["content"].(string); ok {
		post.Content = content
	}
	if tags, ok := updates["hash_tags"].([]string); ok {
		post.HashTags = tags
	}
	if imageURL, ok := updates["image_url"].(string); ok {
		post.ImageURL = imageURL
	}
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, id string, uid string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	liked := false
	for i, likerID := range post.Likes {
		if likerID == uid {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			if post.LikeCount > 0 {
				post.LikeCount--
			}
			liked = true
			break
		}
	}
	if !liked {
		post.Likes = append(post.Likes, uid)
		post.LikeCount++
	}

	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) AddComment(ctx context.Context, id string, comment model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func (r *fakePostRepo) RemoveComment(ctx context.Context, id string, comment model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	kept := post.Comments[:0]
	for _, existing := range post.Comments {
		if existing != comment {
			kept = append(kept, existing)
		}
	}
	post.Comments = kept
	return nil
}

// fakeRelationshipRepo mirrors the jsonb merge semantics: add is a
// set-union upsert, remove drops the peer but keeps the record.
type fakeRelationshipRepo struct {
	mu        sync.Mutex
	following map[string][]string
	follower  map[string][]string
}

func newFakeRelationshipRepo() *fakeRelationshipRepo {
	return &fakeRelationshipRepo{
		following: make(map[string][]string),
		follower:  make(map[string][]string),
	}
}

func addPeer(records map[string][]string, uid string, peerID string) {
	for _, existing := range records[uid] {
		if existing == peerID {
			return
		}
	}
	records[uid] = append(records[uid], peerID)
}

func removePeer(records map[string][]string, uid string, peerID string) {
	peers, ok := records[uid]
	if !ok {
		return
	}
	for i, existing := range peers {
		if existing == peerID {
			records[uid] = append(peers[:i], peers[i+1:]...)
			return
		}
	}
}

func (r *fakeRelationshipRepo) AddFollowing(ctx context.Context, uid string, peerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addPeer(r.following, uid, peerID)
	return nil
}

func (r *fakeRelationshipRepo) AddFollower(ctx context.Context, uid string, peerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addPeer(r.follower, uid, peerID)
	return nil
}

func (r *fakeRelationshipRepo) RemoveFollowing(ctx context.Context, uid string, peerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	removePeer(r.following, uid, peerID)
	return nil
}

func (r *fakeRelationshipRepo) RemoveFollower(ctx context.Context, uid string, peerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	removePeer(r.follower, uid, peerID)
	return nil
}

func (r *fakeRelationshipRepo) Following(ctx context.Context, uid string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.following[uid]...), nil
}

func (r *fakeRelationshipRepo) Followers(ctx context.Context, uid string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.follower[uid]...), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*model.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = uuid.NewString()
	stored := notification
	r.notifications = append(r.notifications, &stored)
	return &notification, nil
}

func (r *fakeNotificationRepo) FindByRecipient(ctx context.Context, uid string) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.Notification, 0)
	for _, notification := range r.notifications {
		if notification.UID == uid {
			copied := *notification
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.ID == id && notification.UID == uid {
			notification.IsRead = true
		}
	}
	return nil
}

func newTestRepository(posts postgres.Post, relationships postgres.Relationship, rdb redisrepo.Default) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:         posts,
			Relationship: relationships,
		},
		Redis: &redisrepo.RedisRepository{Default: rdb},
	}
}
