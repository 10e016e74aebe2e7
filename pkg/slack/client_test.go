package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"ok": true, "ts": "1700000000.000100"}`,
		},
		{
			name:    "api_error",
			status:  http.StatusOK,
			body:    `{"ok": false, "error": "channel_not_found"}`,
			wantErr: "channel_not_found",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat.postMessage", r.URL.Path)
				assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))

				var req map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "#creator-reporting", req["channel"])
				assert.Equal(t, "hello", req["text"])
				assert.Equal(t, true, req["mrkdwn"])

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("xoxb-test", WithBaseURL(srv.URL))

			err := client.PostMessage(context.Background(), "#creator-reporting", "hello")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostEphemeral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postEphemeral", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "C123", req["channel"])
		assert.Equal(t, "U456", req["user"])

		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient("xoxb-test", WithBaseURL(srv.URL))

	require.NoError(t, client.PostEphemeral(context.Background(), "C123", "U456", "just for you"))
}
