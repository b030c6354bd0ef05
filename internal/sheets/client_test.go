package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront-orders/internal/apperr"
	"storefront-orders/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRow = []any{"2026-10-19T10:30:00Z", "Asha Verma", "asha@example.com", "998.00"}

func TestClient_AppendRow_Success(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotAuth  string
		gotBody  appendRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":1}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sheet-1", "Orders!A1", StaticToken(" token-abc "))
	err := c.AppendRow(context.Background(), testRow)

	require.NoError(t, err)
	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Orders!A1:append", gotPath)
	assert.Equal(t, "valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS", gotQuery)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, "Asha Verma", gotBody.Values[0][1])
}

func TestClient_AppendRow_Failures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory models.Category
		wantMessage  string
	}{
		{"forbidden", http.StatusForbidden,
			`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`,
			models.CategoryAPI, "The caller does not have permission"},
		{"sheet missing", http.StatusNotFound,
			`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`,
			models.CategorySheetConfig, "Requested entity was not found."},
		{"rate limited", http.StatusTooManyRequests, `quota exceeded`, models.CategoryAPI, "quota exceeded"},
		{"expired token", http.StatusUnauthorized,
			`{"error":{"code":401,"message":"Request had invalid authentication credentials.","status":"UNAUTHENTICATED"}}`,
			models.CategoryAuth, "Request had invalid authentication credentials."},
		{"bad range", http.StatusBadRequest,
			`{"error":{"code":400,"message":"Unable to parse range: Orders!A1","status":"INVALID_ARGUMENT"}}`,
			models.CategoryValidation, "Unable to parse range: Orders!A1"},
		{"server error", http.StatusInternalServerError, ``, models.CategorySystem, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, "sheet-1", "Orders!A1", StaticToken("t")).AppendRow(context.Background(), testRow)

			require.Error(t, err)
			var se *apperr.StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.wantMessage, se.Message)
			assert.Equal(t, tt.wantCategory, apperr.Category(err, true))
		})
	}
}

func TestClient_AppendRow_NotConfigured(t *testing.T) {
	err := NewClient("http://unused", "", "Orders!A1", StaticToken("t")).AppendRow(context.Background(), testRow)

	require.Error(t, err)
	assert.Equal(t, models.CategorySheetConfig, apperr.Category(err, true))
}

func TestClient_AppendRow_MissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		tokens TokenSource
	}{
		{"empty static token", StaticToken("")},
		{"no token source", nil},
		{"missing token file", FileToken{Path: filepath.Join(t.TempDir(), "absent")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewClient(srv.URL, "sheet-1", "Orders!A1", tt.tokens).AppendRow(context.Background(), testRow)

			require.Error(t, err)
			assert.Equal(t, models.CategoryAuth, apperr.Category(err, true))
		})
	}
	assert.False(t, called, "без токена запрос не должен уходить")
}

func TestClient_AppendRow_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, "sheet-1", "Orders!A1", StaticToken("t"),
		WithHTTPClient(&http.Client{Timeout: time.Second}),
	).AppendRow(context.Background(), testRow)

	require.Error(t, err)
	assert.Equal(t, models.CategoryNetwork, apperr.Category(err, true))
}

func TestFileToken_RereadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))
	src := FileToken{Path: path}

	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", tok)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
	tok, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", tok)
}
