package storage

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type cdnStorage struct {
	logger     *zap.Logger
	httpClient *http.Client
}

func newCDNStorage(logger *zap.Logger) Storage {
	return &cdnStorage{
		logger:     logger,
		httpClient: &http.Client{},
	}
}

func (s *cdnStorage) UploadDataURL(key string, dataURL string) (string, error) {
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	endpoint := "/upload"
	uploadURL := viper.GetString("cdn.origin") + endpoint

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	fileWriter, err := writer.CreateFormFile("file", key)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create file part for CDN request: %s", err.Error())
		return "", err
	}

	if _, err := fileWriter.Write(data); err != nil {
		s.logger.Sugar().Errorf("failed to write file content for CDN request: %s", err.Error())
		return "", err
	}

	if err := writer.WriteField("path", key); err != nil {
		s.logger.Sugar().Errorf("failed to write path field for CDN request: %s", err.Error())
		return "", err
	}

	if err := writer.Close(); err != nil {
		s.logger.Sugar().Errorf("failed to close writer for CDN request: %s", err.Error())
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, uploadURL, &requestBody)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create CDN request: %s", err.Error())
		return "", err
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Add("type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to do CDN request: %s", err.Error())
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read response body from CDN: %s", err.Error())
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			s.logger.Sugar().Errorf("failed to decode error response from CDN: %s", err.Error())
		} else {
			s.logger.Sugar().Errorf("ERROR from CDN endpoint(%s), code(%d), details: %s", endpoint, resp.StatusCode, bodyJSON["details"])
		}
		return "", ErrUploadFailed
	}

	return string(body), nil
}

func (s *cdnStorage) Delete(fileURL string) error {
	deleteURL := viper.GetString("cdn.origin") + "/delete?url=" + url.QueryEscape(fileURL)

	req, err := http.NewRequest(http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrDeleteFailed
	}

	return nil
}
