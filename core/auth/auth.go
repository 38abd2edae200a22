package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cratefm/model"
)

// Client resolves request tokens against the external user service. The
// admin service never parses or verifies the token itself; whatever
// identity the user service returns is taken at face value.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建用户服务客户端
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type meResponse struct {
	User *model.Identity `json:"user"`
}

// ResolveCaller asks the user service who the token belongs to.
func (c *Client) ResolveCaller(ctx context.Context, token string) (*model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/user/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user service request: %w", err)
	}
	req.Header.Set("token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach user service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user service rejected token: status %d", resp.StatusCode)
	}

	var body meResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user service response: %w", err)
	}
	if body.User == nil {
		return nil, fmt.Errorf("user service returned no user")
	}

	return body.User, nil
}
