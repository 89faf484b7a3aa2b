package postgres

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

const postColumns = "id, uid, email, content, created_at, profile_url, image_url, hash_tags, likes, like_count, comments"

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.NewString()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	if post.HashTags == nil {
		post.HashTags = []string{}
	}

	hashTags, err := json.Marshal(post.HashTags)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO posts(id, uid, email, content, created_at, profile_url, image_url, hash_tags, likes, like_count, comments)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, '[]', 0, '[]')`,
		post.ID,
		post.UID,
		post.Email,
		post.Content,
		post.CreatedAt,
		post.ProfileURL,
		post.ImageURL,
		hashTags,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	row := r.db.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	return scanPost(row)
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	// created_at is the legacy locale string; ordering stays a string
	// compare on purpose.
	rows, err := r.db.Query(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	allowedFields := []string{"content", "hash_tags", "image_url"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}

	query := "UPDATE posts SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		if column == "hash_tags" {
			tagsJSON, err := json.Marshal(value)
			if err != nil {
				return err
			}
			value = tagsJSON
		}
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

// ToggleLike flips uid's membership in the liker set and adjusts
// like_count in the same statement, so concurrent toggles from different
// viewers cannot observe a half-applied pair.
func (r *postRepo) ToggleLike(ctx context.Context, id string, uid string) (*model.Post, error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE posts SET
			likes = CASE WHEN likes ? $2 THEN likes - $2 ELSE likes || to_jsonb($2::text) END,
			like_count = CASE WHEN likes ? $2 THEN GREATEST(like_count - 1, 0) ELSE like_count + 1 END
		WHERE id = $1
		RETURNING `+postColumns,
		id,
		uid,
	)
	return scanPost(row)
}

func (r *postRepo) AddComment(ctx context.Context, id string, comment model.Comment) error {
	commentJSON, err := json.Marshal(comment)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		"UPDATE posts SET comments = comments || $2::jsonb WHERE id = $1",
		id,
		commentJSON,
	)
	return err
}

// RemoveComment drops every element equal to the given comment by full
// value; no rows change when nothing matches.
func (r *postRepo) RemoveComment(ctx context.Context, id string, comment model.Comment) error {
	commentJSON, err := json.Marshal(comment)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`UPDATE posts SET comments = COALESCE(
			(SELECT jsonb_agg(c) FROM jsonb_array_elements(comments) AS c WHERE c <> $2::jsonb),
			'[]'::jsonb
		) WHERE id = $1`,
		id,
		commentJSON,
	)
	return err
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		post         model.Post
		hashTagsJSON []byte
		likesJSON    []byte
		commentsJSON []byte
	)
	if err := row.Scan(
		&post.ID,
		&post.UID,
		&post.Email,
		&post.Content,
		&post.CreatedAt,
		&post.ProfileURL,
		&post.ImageURL,
		&hashTagsJSON,
		&likesJSON,
		&post.LikeCount,
		&commentsJSON,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(hashTagsJSON, &post.HashTags); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(likesJSON, &post.Likes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(commentsJSON, &post.Comments); err != nil {
		return nil, err
	}

	return &post, nil
}
