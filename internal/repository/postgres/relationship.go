package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// relationshipRepo maintains the two denormalized adjacency documents.
// Each write touches exactly one record; the service layer issues the
// paired writes and owns their ordering.
type relationshipRepo struct {
	db *pgxpool.Pool
}

func newRelationshipRepo(db *pgxpool.Pool) Relationship {
	return &relationshipRepo{
		db: db,
	}
}

func (r *relationshipRepo) AddFollowing(ctx context.Context, uid string, peerID string) error {
	return r.addPeer(ctx, "following", uid, peerID)
}

func (r *relationshipRepo) AddFollower(ctx context.Context, uid string, peerID string) error {
	return r.addPeer(ctx, "follower", uid, peerID)
}

func (r *relationshipRepo) RemoveFollowing(ctx context.Context, uid string, peerID string) error {
	return r.removePeer(ctx, "following", uid, peerID)
}

func (r *relationshipRepo) RemoveFollower(ctx context.Context, uid string, peerID string) error {
	return r.removePeer(ctx, "follower", uid, peerID)
}

func (r *relationshipRepo) Following(ctx context.Context, uid string) ([]string, error) {
	return r.peers(ctx, "following", uid)
}

func (r *relationshipRepo) Followers(ctx context.Context, uid string) ([]string, error) {
	return r.peers(ctx, "follower", uid)
}

// addPeer upserts with merge semantics: the record is created on first
// follow and the peer id is added at most once.
func (r *relationshipRepo) addPeer(ctx context.Context, table string, uid string, peerID string) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO `+table+`(uid, users) VALUES($1, to_jsonb(ARRAY[$2::text]))
		ON CONFLICT (uid) DO UPDATE SET users = CASE
			WHEN `+table+`.users ? $2 THEN `+table+`.users
			ELSE `+table+`.users || to_jsonb($2::text)
		END`,
		uid,
		peerID,
	)
	return err
}

// removePeer drops the peer id but keeps the record; removing an absent
// peer changes nothing.
func (r *relationshipRepo) removePeer(ctx context.Context, table string, uid string, peerID string) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE "+table+" SET users = users - $2 WHERE uid = $1",
		uid,
		peerID,
	)
	return err
}

func (r *relationshipRepo) peers(ctx context.Context, table string, uid string) ([]string, error) {
	var usersJSON []byte
	if err := r.db.QueryRow(
		ctx,
		"SELECT users FROM "+table+" WHERE uid = $1",
		uid,
	).Scan(&usersJSON); err != nil {
		if err == pgx.ErrNoRows {
			return []string{}, nil
		}
		return nil, err
	}

	var users []string
	if err := json.Unmarshal(usersJSON, &users); err != nil {
		return nil, err
	}

	return users, nil
}
