package dto

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
	// HashTags arrive already split; the client rejects duplicates on
	// entry and so does Validate.
	HashTags     []string `json:"hashTags"`
	ImageDataURL string   `json:"image_data_url"`
}

func (r CreatePostRequest) Validate() error {
	return validateHashTags(r.HashTags)
}

type EditPostRequest struct {
	Content  *string  `json:"content"`
	HashTags []string `json:"hashTags"`
	// ImageDataURL semantics: nil leaves the image alone, "" removes it,
	// anything else replaces it.
	ImageDataURL *string `json:"image_data_url"`
}

func (r EditPostRequest) Validate() error {
	return validateHashTags(r.HashTags)
}

func validateHashTags(tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			return ErrDuplicateHashtag
		}
		seen[tag] = struct{}{}
	}
	return nil
}
