package service

import "errors"

var (
	ErrInternal            = errors.New("internal server error")
	ErrPostNotFound        = errors.New("post not found")
	ErrForbidden           = errors.New("operation is not allowed for this user")
	ErrImageMustBeDataURL  = errors.New("image must be a data URL")
	ErrUnknownFeedScope    = errors.New("unknown feed scope")
	ErrFailedToUploadImage = errors.New("failed to upload image to storage")
)
