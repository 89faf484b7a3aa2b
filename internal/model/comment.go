package model

// Comment is embedded in its post; it has no id of its own, so removal
// is by full-value match.
type Comment struct {
	Comment   string `json:"comment"`
	UID       string `json:"uid"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}
