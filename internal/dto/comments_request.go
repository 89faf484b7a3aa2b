package dto

type CreateCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// DeleteCommentRequest carries the full comment value; embedded comments
// have no id, so the match is by every field.
type DeleteCommentRequest struct {
	Comment   string `json:"comment" binding:"required"`
	UID       string `json:"uid" binding:"required"`
	Email     string `json:"email" binding:"required"`
	CreatedAt string `json:"createdAt" binding:"required"`
}
