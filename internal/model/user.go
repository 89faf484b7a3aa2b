package model

// SessionUser is the identity resolved from the external auth provider.
// The provider owns it; this service only caches it for render gating.
type SessionUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}
