package model

type Notification struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}
