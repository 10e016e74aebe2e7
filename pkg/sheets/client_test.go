package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/spreadsheets/sheet-1/values/BizDev!A:A", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"range": "BizDev!A1:A3", "values": [["Date"], ["2026-02-24"], ["2026-02-25"]]}`))
	}))
	defer srv.Close()

	client := NewClient("sheet-1", StaticToken("tok"), WithBaseURL(srv.URL))

	got, err := client.GetValues(context.Background(), "BizDev!A:A")
	require.NoError(t, err)
	require.Len(t, got.Values, 3)
	assert.Equal(t, "2026-02-25", got.Values[2][0])
}

func TestUpdateValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/spreadsheets/sheet-1/values/BizDev!A3:D3", r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))

		var body ValueRange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Values, 1)
		assert.Equal(t, []any{"2026-02-25", float64(4), float64(2), float64(1)}, body.Values[0])

		_, _ = w.Write([]byte(`{"updatedCells": 4}`))
	}))
	defer srv.Close()

	client := NewClient("sheet-1", StaticToken("tok"), WithBaseURL(srv.URL))

	err := client.UpdateValues(context.Background(), "BizDev!A3:D3", [][]any{{"2026-02-25", 4, 2, 1}})
	require.NoError(t, err)
}

func TestAppendValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/spreadsheets/sheet-1/values/BizDev!A:D:append", r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))

		_, _ = w.Write([]byte(`{"updates": {"updatedRows": 1}}`))
	}))
	defer srv.Close()

	client := NewClient("sheet-1", StaticToken("tok"), WithBaseURL(srv.URL))

	err := client.AppendValues(context.Background(), "BizDev!A:D", [][]any{{"2026-02-25", 4, 2, 1}})
	require.NoError(t, err)
}

func TestNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"status": "PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client := NewClient("sheet-1", StaticToken("tok"), WithBaseURL(srv.URL))

	_, err := client.GetValues(context.Background(), "BizDev!A1:D1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}
