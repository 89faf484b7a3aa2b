package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/hyeonKii/SocialService/internal/config"
	"go.uber.org/zap"
)

var (
	ErrUnknownDriver  = errors.New("unknown storage driver")
	ErrInvalidDataURL = errors.New("invalid data URL")
	ErrUploadFailed   = errors.New("failed to upload file")
	ErrDeleteFailed   = errors.New("failed to delete file")
)

// Storage is the blob-store collaborator: uploads accept the data-URL
// strings the client produces and return a public URL; Delete takes that
// URL back.
type Storage interface {
	UploadDataURL(key string, dataURL string) (string, error)
	Delete(url string) error
}

func New(cfg config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Driver {
	case "cdn":
		return newCDNStorage(logger), nil
	case "local":
		return newLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "s3":
		return newS3Storage(cfg.S3Region, cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

// decodeDataURL splits "data:<mime>;base64,<payload>" into content type
// and raw bytes.
func decodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, ErrInvalidDataURL
	}

	meta, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrInvalidDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidDataURL
	}

	return strings.TrimSuffix(meta, ";base64"), data, nil
}
