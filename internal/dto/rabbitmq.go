package dto

type MQNotificationMsg struct {
	UID       string `json:"uid"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}
