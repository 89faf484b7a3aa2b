package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignUpRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  SignUpRequest
		want error
	}{
		{
			name: "valid",
			req:  SignUpRequest{Email: "alice@test.io", Password: "password1", PasswordConfirm: "password1"},
			want: nil,
		},
		{
			name: "email without domain dot",
			req:  SignUpRequest{Email: "alice@localhost", Password: "password1", PasswordConfirm: "password1"},
			want: ErrInvalidEmail,
		},
		{
			name: "email without at sign",
			req:  SignUpRequest{Email: "alice.test.io", Password: "password1", PasswordConfirm: "password1"},
			want: ErrInvalidEmail,
		},
		{
			name: "short password",
			req:  SignUpRequest{Email: "alice@test.io", Password: "short", PasswordConfirm: "short"},
			want: ErrPasswordTooShort,
		},
		{
			name: "confirmation mismatch",
			req:  SignUpRequest{Email: "alice@test.io", Password: "password1", PasswordConfirm: "password2"},
			want: ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Validate())
		})
	}
}

func TestCreatePostRequestRejectsDuplicateHashtags(t *testing.T) {
	assert.NoError(t, CreatePostRequest{Content: "hi", HashTags: []string{"go", "redis"}}.Validate())
	assert.ErrorIs(t, CreatePostRequest{Content: "hi", HashTags: []string{"go", "go"}}.Validate(), ErrDuplicateHashtag)
}

func TestEditPostRequestRejectsDuplicateHashtags(t *testing.T) {
	assert.NoError(t, EditPostRequest{}.Validate())
	assert.ErrorIs(t, EditPostRequest{HashTags: []string{"a", "a"}}.Validate(), ErrDuplicateHashtag)
}
