// Package slack wraps the Slack Web API operations used for reporting:
// posting a channel message and posting an ephemeral (user-only) reply.
// It also verifies inbound request signatures for slash commands.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://slack.com/api"

// Client performs Slack Web API operations.
type Client interface {
	PostMessage(ctx context.Context, channel, text string) error
	PostEphemeral(ctx context.Context, channel, user, text string) error
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a Slack Web API client authenticated with a bot token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// apiResponse is the envelope Slack wraps around every Web API response.
// Slack returns HTTP 200 even for failures; ok/error carry the outcome.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (c *httpClient) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "slack: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "slack: create request")
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "slack: %s", method)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "slack: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("slack: %s: unexpected status %d: %s", method, resp.StatusCode, string(respBody))
	}

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		return eris.Wrap(err, "slack: unmarshal response")
	}
	if !api.OK {
		return eris.Errorf("slack: %s: %s", method, api.Error)
	}

	return nil
}

func (c *httpClient) PostMessage(ctx context.Context, channel, text string) error {
	return c.call(ctx, "chat.postMessage", map[string]any{
		"channel": channel,
		"text":    text,
		"mrkdwn":  true,
	})
}

func (c *httpClient) PostEphemeral(ctx context.Context, channel, user, text string) error {
	return c.call(ctx, "chat.postEphemeral", map[string]any{
		"channel": channel,
		"user":    user,
		"text":    text,
	})
}
