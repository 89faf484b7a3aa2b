package handler

import "errors"

var (
	errNotAuthorized    = errors.New("user is not authorized")
	errInvalidPostID    = errors.New("invalid post ID")
	errInvalidUserID    = errors.New("invalid user ID")
	errInvalidComment   = errors.New("invalid comment payload")
	errUnknownFeedScope = errors.New("scope must be 'all' or 'following'")
)
