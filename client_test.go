package aiornot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		options []option
		wantErr error
		check   func(t *testing.T, c *Client)
	}{
		{
			name:    "missing API key",
			env:     map[string]string{"AIORNOT_API_KEY": "", "AIORNOT_API_TOKEN": ""},
			options: []option{},
			wantErr: ErrAPIKeyRequired,
		},
		{
			name:    "with API key",
			options: []option{WithAPIKey("test-key")},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, "test-key", c.apiKey)
				assert.Equal(t, DefaultBaseURL, c.baseURL)
				assert.Equal(t, DefaultTimeout, c.timeout)
			},
		},
		{
			name: "key from environment",
			env:  map[string]string{"AIORNOT_API_KEY": "env-key"},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, "env-key", c.apiKey)
			},
		},
		{
			name: "token variable fallback",
			env:  map[string]string{"AIORNOT_API_KEY": "", "AIORNOT_API_TOKEN": "fallback-token"},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, "fallback-token", c.apiKey)
			},
		},
		{
			name: "base URL from environment",
			env:  map[string]string{"AIORNOT_BASE_URL": "https://staging.example.com"},
			options: []option{
				WithAPIKey("test-key"),
			},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, "https://staging.example.com", c.baseURL)
			},
		},
		{
			name: "explicit base URL wins over environment",
			env:  map[string]string{"AIORNOT_BASE_URL": "https://staging.example.com"},
			options: []option{
				WithAPIKey("test-key"),
				WithBaseURL("https://other.example.com"),
			},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, "https://other.example.com", c.baseURL)
			},
		},
		{
			name: "with custom timeout",
			options: []option{
				WithAPIKey("test-key"),
				WithTimeout(30 * time.Second),
			},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, 30*time.Second, c.timeout)
			},
		},
		{
			name: "with injected http client",
			options: []option{
				WithAPIKey("test-key"),
				WithHTTPClient(&http.Client{}),
			},
			check: func(t *testing.T, c *Client) {
				assert.False(t, c.ownsPool)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, ok := tt.env["AIORNOT_API_KEY"]; !ok {
				t.Setenv("AIORNOT_API_KEY", "")
			}
			if _, ok := tt.env["AIORNOT_API_TOKEN"]; !ok {
				t.Setenv("AIORNOT_API_TOKEN", "")
			}
			if _, ok := tt.env["AIORNOT_BASE_URL"]; !ok {
				t.Setenv("AIORNOT_BASE_URL", "")
			}

			client, err := New(tt.options...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			defer client.Close()
			if tt.check != nil {
				tt.check(t, client)
			}
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, options ...option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	options = append([]option{WithAPIKey("test-key"), WithBaseURL(srv.URL)}, options...)
	client, err := New(options...)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestClient_IsLive(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
		wantErr bool
	}{
		{
			name: "healthy",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v1/system/live", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				w.Write([]byte(`{"is_live": true}`))
			},
			want: true,
		},
		{
			name: "service reports not live",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"is_live": false}`))
			},
			want: false,
		},
		{
			name: "unauthorized is not an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: false,
		},
		{
			name: "server error is not an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			live, err := client.IsLive(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, live)
		})
	}
}

func TestClient_CheckToken(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/credentials/tokens", r.URL.Path)
			w.Write([]byte(`{"is_valid": true, "expires_at": "2027-01-01T00:00:00Z"}`))
		})

		resp, err := client.CheckToken(context.Background())
		require.NoError(t, err)
		assert.True(t, resp.IsValid)
		assert.Equal(t, "2027-01-01T00:00:00Z", resp.ExpiresAt)
	})

	t.Run("401 means invalid, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Invalid API key"}`))
		})

		resp, err := client.CheckToken(context.Background())
		require.NoError(t, err)
		assert.False(t, resp.IsValid)
	})
}

func TestClient_RefreshToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/credentials/tokens", r.URL.Path)
		w.Write([]byte(`{"token": "new-token"}`))
	})

	resp, err := client.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-token", resp.Token)
}

func TestClient_RevokeToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/credentials/tokens", r.URL.Path)
		w.Write([]byte(`{"is_revoked": true}`))
	})

	resp, err := client.RevokeToken(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsRevoked)
}
