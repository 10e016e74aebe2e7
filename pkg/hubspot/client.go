// Package hubspot wraps the HubSpot CRM HTTP API: object search, association
// batch reads, object batch reads, and the v1 engagements feed.
//
// Required private-app scopes:
//   - crm.objects.contacts.read
//   - crm.objects.deals.read
//   - conversations.read  (WhatsApp inbox threads)
//   - sales-email-read    (email engagement history)
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.hubapi.com"

	// BatchLimit is the maximum number of IDs HubSpot accepts per batch call.
	BatchLimit = 100

	// PageLimit is the page size used for search and engagement pagination.
	PageLimit = 100
)

// Client defines the HubSpot API operations used by this application.
type Client interface {
	SearchObjects(ctx context.Context, objectType string, req SearchRequest) (*SearchResponse, error)
	BatchReadAssociations(ctx context.Context, fromType, toType string, ids []string) (*AssociationBatchResponse, error)
	BatchReadObjects(ctx context.Context, objectType string, ids []string, properties []string) (*ObjectBatchResponse, error)
	RecentEngagements(ctx context.Context, since int64, offset int) (*EngagementsPage, error)
	ListPipelines(ctx context.Context, objectType string) (*PipelinesResponse, error)
}

// SearchRequest is the body for POST /crm/v3/objects/{type}/search.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups,omitempty"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
	After        string        `json:"after,omitempty"`
}

// FilterGroup is an OR group of AND filters.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// Filter is a single property filter.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// SearchResponse is the response from the search endpoint.
type SearchResponse struct {
	Total   int            `json:"total"`
	Results []ObjectResult `json:"results"`
	Paging  *Paging        `json:"paging,omitempty"`
}

// ObjectResult is a single CRM object with its requested properties.
type ObjectResult struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Paging carries the cursor for the next page, when any.
type Paging struct {
	Next *PagingNext `json:"next,omitempty"`
}

// PagingNext holds the next-page cursor token.
type PagingNext struct {
	After string `json:"after"`
}

// NextAfter returns the next-page cursor or "" when no further page exists.
func (r *SearchResponse) NextAfter() string {
	if r.Paging == nil || r.Paging.Next == nil {
		return ""
	}
	return r.Paging.Next.After
}

// AssociationBatchResponse is the response from the v4 association batch read.
type AssociationBatchResponse struct {
	Results []AssociationResult `json:"results"`
}

// AssociationResult lists the objects associated with one source object.
type AssociationResult struct {
	From ObjectRef       `json:"from"`
	To   []AssociationTo `json:"to"`
}

// ObjectRef identifies a CRM object.
type ObjectRef struct {
	ID string `json:"id"`
}

// AssociationTo is one association target. HubSpot serialises the target ID
// as a JSON number.
type AssociationTo struct {
	ToObjectID int64 `json:"toObjectId"`
}

// IDString returns the target object ID as the opaque string used elsewhere.
func (a AssociationTo) IDString() string {
	return strconv.FormatInt(a.ToObjectID, 10)
}

// ObjectBatchResponse is the response from the v3 object batch read.
type ObjectBatchResponse struct {
	Results []ObjectResult `json:"results"`
}

// EngagementsPage is one page of GET /engagements/v1/engagements/recent/modified.
type EngagementsPage struct {
	Results []EngagementItem `json:"results"`
	HasMore bool             `json:"hasMore"`
	Offset  int              `json:"offset"`
}

// EngagementItem is a single engagement record.
type EngagementItem struct {
	Engagement   EngagementMeta     `json:"engagement"`
	Metadata     EngagementMetadata `json:"metadata"`
	Associations EngagementAssocs   `json:"associations"`
}

// EngagementMeta holds the engagement envelope fields.
type EngagementMeta struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// EngagementMetadata holds type-specific fields; only email direction is used.
type EngagementMetadata struct {
	Direction string `json:"direction"`
}

// EngagementAssocs lists the objects associated with an engagement.
type EngagementAssocs struct {
	ContactIDs []int64 `json:"contactIds"`
}

// PipelinesResponse is the response from GET /crm/v3/pipelines/{type}.
type PipelinesResponse struct {
	Results []Pipeline `json:"results"`
}

// Pipeline is a CRM sales pipeline.
type Pipeline struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Archived bool   `json:"archived"`
}

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hubspot: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsMissingScope reports whether err is a 403 from the API, which HubSpot
// returns when the private app lacks a required scope.
func IsMissingScope(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusForbidden
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

// WithRateLimit overrides the default request rate limit (10 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a HubSpot API client authenticated with a private-app
// access token. Calls are throttled to 10 req/s by default (HubSpot's
// burst limit for private apps).
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(10, 10),
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// do sends one API request and decodes the JSON response into out.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "hubspot: rate limit")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "hubspot: marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return eris.Wrap(err, "hubspot: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "hubspot: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "hubspot: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "hubspot: unmarshal response")
	}

	return nil
}

func (c *httpClient) SearchObjects(ctx context.Context, objectType string, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	path := fmt.Sprintf("/crm/v3/objects/%s/search", objectType)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) BatchReadAssociations(ctx context.Context, fromType, toType string, ids []string) (*AssociationBatchResponse, error) {
	if len(ids) > BatchLimit {
		return nil, eris.Errorf("hubspot: association batch of %d exceeds limit %d", len(ids), BatchLimit)
	}
	body := batchInputs(ids, nil)
	var out AssociationBatchResponse
	path := fmt.Sprintf("/crm/v4/associations/%s/%s/batch/read", fromType, toType)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) BatchReadObjects(ctx context.Context, objectType string, ids []string, properties []string) (*ObjectBatchResponse, error) {
	if len(ids) > BatchLimit {
		return nil, eris.Errorf("hubspot: object batch of %d exceeds limit %d", len(ids), BatchLimit)
	}
	body := batchInputs(ids, properties)
	var out ObjectBatchResponse
	path := fmt.Sprintf("/crm/v3/objects/%s/batch/read", objectType)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) RecentEngagements(ctx context.Context, since int64, offset int) (*EngagementsPage, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(PageLimit))
	q.Set("since", strconv.FormatInt(since, 10))
	q.Set("offset", strconv.Itoa(offset))

	var out EngagementsPage
	if err := c.do(ctx, http.MethodGet, "/engagements/v1/engagements/recent/modified", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ListPipelines(ctx context.Context, objectType string) (*PipelinesResponse, error) {
	var out PipelinesResponse
	path := fmt.Sprintf("/crm/v3/pipelines/%s", objectType)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// batchInputs builds the {"inputs":[{"id":...}],"properties":[...]} body
// shared by the batch endpoints.
func batchInputs(ids []string, properties []string) map[string]any {
	inputs := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		inputs = append(inputs, map[string]string{"id": id})
	}
	body := map[string]any{"inputs": inputs}
	if len(properties) > 0 {
		body["properties"] = properties
	}
	return body
}
