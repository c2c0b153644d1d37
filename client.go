package aiornot

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"
)

// option is a function that configures the client.
type option func(*cfg)

// WithAPIKey sets the API key for the client. Get one from
// https://aiornot.com/dashboard/api. If not set, the AIORNOT_API_KEY
// environment variable is used.
func WithAPIKey(apiKey string) option {
	return func(c *cfg) {
		c.apiKey = apiKey
	}
}

// WithBaseURL sets the API base URL. Unless you are targeting a staging
// environment, there is no need to set this.
func WithBaseURL(baseURL string) option {
	return func(c *cfg) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for content analysis requests. If not set,
// the default timeout is 180 seconds. Health checks and token operations use
// their own shorter deadlines.
func WithTimeout(timeout time.Duration) option {
	return func(c *cfg) {
		c.timeout = timeout
	}
}

// WithHTTPClient supplies a caller-owned http.Client. The client's connection
// pool is then shared with the caller and Close becomes a no-op; without this
// option the SDK constructs and owns its own pool.
func WithHTTPClient(httpClient *http.Client) option {
	return func(c *cfg) {
		c.httpClient = httpClient
	}
}

// cfg holds configuration for the AIORNOT client.
type cfg struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Client talks to the AIORNOT AI-content-detection API. A Client is safe for
// concurrent use; all its methods share one underlying connection pool, which
// lives from New until Close.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	ownsPool   bool
}

// New creates a new AIORNOT client. The API key is taken from WithAPIKey or,
// failing that, the AIORNOT_API_KEY / AIORNOT_API_TOKEN environment
// variables. The base URL honors AIORNOT_BASE_URL.
func New(options ...option) (*Client, error) {
	config := &cfg{
		timeout: DefaultTimeout,
	}

	for _, option := range options {
		option(config)
	}

	if config.apiKey == "" {
		config.apiKey = os.Getenv("AIORNOT_API_KEY")
	}
	if config.apiKey == "" {
		config.apiKey = os.Getenv("AIORNOT_API_TOKEN")
	}
	if config.apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	if config.baseURL == "" {
		config.baseURL = os.Getenv("AIORNOT_BASE_URL")
	}
	if config.baseURL == "" {
		config.baseURL = DefaultBaseURL
	}

	client := &Client{
		apiKey:  config.apiKey,
		baseURL: config.baseURL,
		timeout: config.timeout,
	}
	if config.httpClient != nil {
		client.httpClient = config.httpClient
	} else {
		client.httpClient = &http.Client{}
		client.ownsPool = true
	}

	return client, nil
}

// Close releases the client's idle connections. It only affects a pool the
// client owns; injected http.Clients are left untouched.
func (c *Client) Close() {
	if c.ownsPool {
		c.httpClient.CloseIdleConnections()
	}
}

// IsLive checks whether the API is reachable and healthy. Unlike every other
// operation it does not fail on 4xx responses or timeouts; those simply
// report false.
func (c *Client) IsLive(ctx context.Context) (bool, error) {
	resp, err := c.send(ctx, "health check", http.MethodGet, "/v1/system/live", nil, nil, "", healthTimeout)
	if err != nil {
		var timeoutErr *TimeoutError
		if errors.As(err, &timeoutErr) {
			return false, nil
		}
		return false, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return false, nil
	}

	var live liveResponse
	if err := decodeReport(resp, &live); err != nil {
		return false, err
	}
	return live.IsLive, nil
}

// CheckToken reports whether the configured API token is valid. A 401 is not
// an error here: it means the token is invalid, which is exactly the question
// being asked.
func (c *Client) CheckToken(ctx context.Context) (*CheckTokenResponse, error) {
	resp, err := c.send(ctx, "token check", http.MethodGet, "/v1/credentials/tokens", nil, nil, "", tokenTimeout)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusUnauthorized {
		return &CheckTokenResponse{IsValid: false}, nil
	}

	var out CheckTokenResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken rotates the API token and returns the newly issued one. The
// old token stops working once this call succeeds.
func (c *Client) RefreshToken(ctx context.Context) (*RefreshTokenResponse, error) {
	resp, err := c.send(ctx, "token refresh", http.MethodPut, "/v1/credentials/tokens", nil, nil, "", tokenTimeout)
	if err != nil {
		return nil, err
	}

	var out RefreshTokenResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeToken permanently revokes the API token.
func (c *Client) RevokeToken(ctx context.Context) (*RevokeTokenResponse, error) {
	resp, err := c.send(ctx, "token revoke", http.MethodDelete, "/v1/credentials/tokens", nil, nil, "", tokenTimeout)
	if err != nil {
		return nil, err
	}

	var out RevokeTokenResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
