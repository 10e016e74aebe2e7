package hubspot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchObjects(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   string
		wantIDs   []string
		wantAfter string
	}{
		{
			name:   "success_with_paging",
			status: http.StatusOK,
			body: `{
				"total": 2,
				"results": [{"id": "101", "properties": {"hs_timestamp": "1700000000000"}}, {"id": "102", "properties": {}}],
				"paging": {"next": {"after": "cursor-2"}}
			}`,
			wantIDs:   []string{"101", "102"},
			wantAfter: "cursor-2",
		},
		{
			name:    "last_page",
			status:  http.StatusOK,
			body:    `{"total": 1, "results": [{"id": "103"}]}`,
			wantIDs: []string{"103"},
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"message": "missing scope"}`,
			wantErr: "unexpected status 403",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/crm/v3/objects/0-18/search", r.URL.Path)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req SearchRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, PageLimit, req.Limit)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-token", WithBaseURL(srv.URL))

			resp, err := client.SearchObjects(context.Background(), "0-18", SearchRequest{Limit: PageLimit})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			var got []string
			for _, res := range resp.Results {
				got = append(got, res.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
			assert.Equal(t, tt.wantAfter, resp.NextAfter())
		})
	}
}

func TestBatchReadAssociations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v4/associations/contacts/deals/batch/read", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"inputs": [{"id": "c1"}, {"id": "c2"}]}`, string(body))

		_, _ = w.Write([]byte(`{
			"results": [
				{"from": {"id": "c1"}, "to": [{"toObjectId": 9001}, {"toObjectId": 9002}]},
				{"from": {"id": "c2"}, "to": []}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	resp, err := client.BatchReadAssociations(context.Background(), "contacts", "deals", []string{"c1", "c2"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "c1", resp.Results[0].From.ID)
	assert.Equal(t, "9001", resp.Results[0].To[0].IDString())
	assert.Equal(t, "9002", resp.Results[0].To[1].IDString())
	assert.Empty(t, resp.Results[1].To)
}

func TestBatchReadObjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/deals/batch/read", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"inputs": [{"id": "9001"}], "properties": ["pipeline"]}`, string(body))

		_, _ = w.Write([]byte(`{"results": [{"id": "9001", "properties": {"pipeline": "678993585"}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	resp, err := client.BatchReadObjects(context.Background(), "deals", []string{"9001"}, []string{"pipeline"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "678993585", resp.Results[0].Properties["pipeline"])
}

func TestBatchSizeLimit(t *testing.T) {
	client := NewClient("test-token")

	ids := make([]string, BatchLimit+1)
	for i := range ids {
		ids[i] = "x"
	}

	_, err := client.BatchReadAssociations(context.Background(), "contacts", "deals", ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")

	_, err = client.BatchReadObjects(context.Background(), "deals", ids, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestRecentEngagements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/engagements/v1/engagements/recent/modified", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("count"))
		assert.Equal(t, "1700000000000", r.URL.Query().Get("since"))
		assert.Equal(t, "200", r.URL.Query().Get("offset"))

		_, _ = w.Write([]byte(`{
			"results": [{
				"engagement": {"id": 1, "type": "EMAIL", "timestamp": 1700000100000},
				"metadata": {"direction": "INCOMING_EMAIL"},
				"associations": {"contactIds": [42, 43]}
			}],
			"hasMore": true,
			"offset": 300
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	page, err := client.RecentEngagements(context.Background(), 1700000000000, 200)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "EMAIL", page.Results[0].Engagement.Type)
	assert.Equal(t, []int64{42, 43}, page.Results[0].Associations.ContactIDs)
	assert.True(t, page.HasMore)
	assert.Equal(t, 300, page.Offset)
}

func TestListPipelines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/pipelines/deals", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": [{"id": "678993585", "label": "Creators", "archived": false}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	resp, err := client.ListPipelines(context.Background(), "deals")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Creators", resp.Results[0].Label)
}

func TestIsMissingScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "This app hasn't been granted all required scopes"}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := client.SearchObjects(context.Background(), "0-18", SearchRequest{})
	require.Error(t, err)
	assert.True(t, IsMissingScope(err))

	assert.False(t, IsMissingScope(nil))
}
