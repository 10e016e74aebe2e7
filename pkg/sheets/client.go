// Package sheets wraps the Google Sheets values API for the daily report:
// reading the header row and date column, appending a row, and updating a
// row in place. Authentication uses a service-account JWT grant.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// Client performs value operations against one spreadsheet.
type Client interface {
	GetValues(ctx context.Context, rangeRef string) (*ValueRange, error)
	UpdateValues(ctx context.Context, rangeRef string, values [][]any) error
	AppendValues(ctx context.Context, rangeRef string, values [][]any) error
}

// ValueRange mirrors the Sheets API value payload.
type ValueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values,omitempty"`
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
	spreadsheetID string
	tokens        TokenSource
	baseURL       string
	http          *http.Client
}

// NewClient creates a Sheets client bound to one spreadsheet.
func NewClient(spreadsheetID string, tokens TokenSource, opts ...Option) Client {
	c := &httpClient{
		spreadsheetID: spreadsheetID,
		tokens:        tokens,
		baseURL:       defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "sheets: marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return eris.Wrap(err, "sheets: create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "sheets: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "sheets: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return eris.Errorf("sheets: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return eris.Wrap(err, "sheets: unmarshal response")
		}
	}

	return nil
}

func (c *httpClient) valuesPath(rangeRef string) string {
	return fmt.Sprintf("/spreadsheets/%s/values/%s", c.spreadsheetID, url.PathEscape(rangeRef))
}

func (c *httpClient) GetValues(ctx context.Context, rangeRef string) (*ValueRange, error) {
	var out ValueRange
	if err := c.do(ctx, http.MethodGet, c.valuesPath(rangeRef), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) UpdateValues(ctx context.Context, rangeRef string, values [][]any) error {
	q := url.Values{}
	q.Set("valueInputOption", "RAW")
	body := ValueRange{Range: rangeRef, Values: values}
	return c.do(ctx, http.MethodPut, c.valuesPath(rangeRef), q, body, nil)
}

func (c *httpClient) AppendValues(ctx context.Context, rangeRef string, values [][]any) error {
	q := url.Values{}
	q.Set("valueInputOption", "RAW")
	body := ValueRange{Values: values}
	return c.do(ctx, http.MethodPost, c.valuesPath(rangeRef)+":append", q, body, nil)
}
