package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProviderRejected   = errors.New("provider sign-in was rejected")
	ErrInternal           = errors.New("auth provider is unavailable")
)

// Client talks to the external identity service. Accounts live there;
// this service only consumes tokens and profile data.
type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
}

func New(logger *zap.Logger) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{},
	}
}

type tokenResult struct {
	AccessToken string            `json:"access_token"`
	User        model.SessionUser `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email string, password string) (string, *model.SessionUser, error) {
	result, err := c.exchange(ctx, "/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", nil, err
	}
	return result.AccessToken, &result.User, nil
}

func (c *Client) SignUp(ctx context.Context, email string, password string) (string, *model.SessionUser, error) {
	result, err := c.exchange(ctx, "/signup", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", nil, err
	}
	return result.AccessToken, &result.User, nil
}

// SignInWithProvider exchanges an OAuth id token (google, github) for a
// session with the identity service.
func (c *Client) SignInWithProvider(ctx context.Context, provider string, idToken string) (string, *model.SessionUser, error) {
	result, err := c.exchange(ctx, "/signin/"+provider, map[string]string{
		"id_token": idToken,
	})
	if err != nil {
		if err == ErrInvalidCredentials {
			return "", nil, ErrProviderRejected
		}
		return "", nil, err
	}
	return result.AccessToken, &result.User, nil
}

func (c *Client) exchange(ctx context.Context, endpoint string, payload map[string]string) (*tokenResult, error) {
	url := viper.GetString("auth-provider.api") + endpoint

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ErrInternal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Sugar().Errorf("failed to create request to auth provider: %s", err.Error())
		return nil, ErrInternal
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("failed to send request to auth provider: %s", err.Error())
		return nil, ErrInternal
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Sugar().Errorf("failed to read response body from auth provider: %s", err.Error())
		return nil, ErrInternal
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Sugar().Errorf("ERROR from auth provider endpoint(%s), code(%d)", endpoint, resp.StatusCode)
		return nil, ErrInternal
	}

	var result tokenResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.Sugar().Errorf("failed to decode response body from auth provider: %s", err.Error())
		return nil, ErrInternal
	}

	return &result, nil
}

func (c *Client) FetchUser(ctx context.Context, accessToken string) (*model.SessionUser, error) {
	endpoint := "/users/@me"
	url := viper.GetString("auth-provider.api") + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Sugar().Errorf("failed to create request to auth provider: %s", err.Error())
		return nil, ErrInternal
	}

	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("failed to send request to auth provider: %s", err.Error())
		return nil, ErrInternal
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Sugar().Errorf("failed to read response body from auth provider: %s", err.Error())
		return nil, ErrInternal
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			c.logger.Sugar().Errorf("failed to decode error response from auth provider: %s", err.Error())
		} else {
			c.logger.Sugar().Errorf("ERROR from auth provider endpoint(%s), details: %s", endpoint, bodyJSON["details"])
		}
		return nil, errors.New("failed to fetch user")
	}

	var user model.SessionUser
	if err := json.Unmarshal(body, &user); err != nil {
		c.logger.Sugar().Errorf("failed to decode user response body from auth provider: %s", err.Error())
		return nil, ErrInternal
	}

	return &user, nil
}

// UpdateProfile pushes display name / avatar changes to the identity
// service on the user's behalf.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, fields map[string]interface{}) error {
	endpoint := "/users/@me"
	url := viper.GetString("auth-provider.api") + endpoint

	body, err := json.Marshal(fields)
	if err != nil {
		return ErrInternal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Sugar().Errorf("failed to create request to auth provider: %s", err.Error())
		return ErrInternal
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("failed to send request to auth provider: %s", err.Error())
		return ErrInternal
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Sugar().Errorf("ERROR from auth provider endpoint(%s), code(%d)", endpoint, resp.StatusCode)
		return ErrInternal
	}

	return nil
}
