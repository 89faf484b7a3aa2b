package model

type Post struct {
	ID         string    `json:"id"`
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Content    string    `json:"content"`
	CreatedAt  string    `json:"createdAt"`
	ProfileURL string    `json:"profileUrl,omitempty"`
	Likes      []string  `json:"likes"`
	LikeCount  int64     `json:"likeCount"`
	Comments   []Comment `json:"comments"`
	HashTags   []string  `json:"hashTags"`
	ImageURL   string    `json:"imageUrl,omitempty"`
}

// IsLikedBy reports membership in the liker set. LikeCount mirrors
// len(Likes); the repository keeps both in sync in one atomic update.
func (p *Post) IsLikedBy(uid string) bool {
	for _, id := range p.Likes {
		if id == uid {
			return true
		}
	}
	return false
}
