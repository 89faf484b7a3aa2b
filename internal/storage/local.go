package storage

import (
	"os"
	"path/filepath"
	"strings"
)

type localStorage struct {
	basePath string
	baseURL  string
}

func newLocalStorage(basePath string, baseURL string) (Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}

	return &localStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *localStorage) UploadDataURL(key string, dataURL string) (string, error) {
	_, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.basePath, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}

	return s.baseURL + "/" + key, nil
}

func (s *localStorage) Delete(fileURL string) error {
	key := strings.TrimPrefix(fileURL, s.baseURL+"/")
	if key == fileURL {
		// Not one of ours.
		return nil
	}

	return os.Remove(filepath.Join(s.basePath, key))
}
