package dto

import "errors"

var (
	ErrInvalidEmail     = errors.New("email address is malformed")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDuplicateHashtag = errors.New("duplicate hashtag")
)
