package model

// RelationshipRecord is one of the two denormalized adjacency documents:
// following[uid] holds who uid follows, follower[uid] holds who follows uid.
// A record is created lazily on first follow and never deleted.
type RelationshipRecord struct {
	UID   string   `json:"uid"`
	Users []string `json:"users"`
}
