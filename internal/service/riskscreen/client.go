package riskscreen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ConclusionAllow = "ALLOW"
	ConclusionDeny  = "DENY"
)

type decideRequest struct {
	Email     string `json:"email"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

type decideResponse struct {
	Conclusion string `json:"conclusion"`
	Reason     string `json:"reason"`
}

// Client asks a remote decision service about a registration attempt.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

func NewClient(baseURL, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Screen(ctx context.Context, req Request) (Decision, error) {
	jsonData, err := json.Marshal(decideRequest{
		Email:     req.Email,
		IP:        req.IP,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("marshal decide request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/decide", bytes.NewBuffer(jsonData))
	if err != nil {
		return Decision{}, fmt.Errorf("create decide request failed: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Decision{}, fmt.Errorf("decide request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Decision{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var decided decideResponse
	if err := json.NewDecoder(resp.Body).Decode(&decided); err != nil {
		return Decision{}, fmt.Errorf("decode decide response failed: %w", err)
	}

	switch strings.ToUpper(decided.Conclusion) {
	case ConclusionAllow:
		return Allow, nil
	case ConclusionDeny:
		return Deny(decided.Reason), nil
	default:
		return Decision{}, fmt.Errorf("unknown conclusion %q", decided.Conclusion)
	}
}
