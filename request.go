package aiornot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production API endpoint. Override with
	// WithBaseURL or the AIORNOT_BASE_URL environment variable.
	DefaultBaseURL = "https://api.aiornot.com"

	// DefaultTimeout applies to content analysis requests.
	DefaultTimeout = 180 * time.Second

	healthTimeout = 5 * time.Second
	tokenTimeout  = 10 * time.Second
)

// rawResponse is what one transport round trip produces: the status line and
// the fully read body.
type rawResponse struct {
	status int
	body   []byte
}

// reportFilters carries the advisory query parameters accepted by the image,
// video and text endpoints.
type reportFilters struct {
	only               []string
	excluding          []string
	externalID         string
	includeAnnotations bool
	annotationsSet     bool
}

func (f reportFilters) values() url.Values {
	params := url.Values{}
	for _, t := range f.only {
		params.Add("only", t)
	}
	for _, t := range f.excluding {
		params.Add("excluding", t)
	}
	if f.externalID != "" {
		params.Set("external_id", f.externalID)
	}
	if f.annotationsSet {
		params.Set("include_annotations", fmt.Sprintf("%t", f.includeAnnotations))
	}
	return params
}

// send performs one HTTP round trip. It is the only place the SDK touches the
// network: one call, no retries. Timeouts come back as *TimeoutError tagged
// with op; any other transport failure is returned as-is.
func (c *Client) send(ctx context.Context, op, method, path string, params url.Values, body io.Reader, contentType string, timeout time.Duration) (*rawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Op: op, Err: err}
		}
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Op: op, Err: err}
		}
		return nil, fmt.Errorf("failed to read %s response: %w", op, err)
	}

	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// postFile uploads data as a multipart form with a single file part named
// field.
func (c *Client) postFile(ctx context.Context, op, path string, params url.Values, field, filename string, data []byte) (*rawResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	return c.send(ctx, op, http.MethodPost, path, params, &buf, w.FormDataContentType(), c.timeout)
}

// postObjectURL submits a remote URL for analysis as a JSON {"object": url}
// body.
func (c *Client) postObjectURL(ctx context.Context, op, path string, params url.Values, objectURL string) (*rawResponse, error) {
	payload, err := json.Marshal(map[string]string{"object": objectURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.send(ctx, op, http.MethodPost, path, params, bytes.NewReader(payload), "application/json", c.timeout)
}

// postForm submits form-encoded fields.
func (c *Client) postForm(ctx context.Context, op, path string, params url.Values, form url.Values) (*rawResponse, error) {
	body := strings.NewReader(form.Encode())
	return c.send(ctx, op, http.MethodPost, path, params, body, "application/x-www-form-urlencoded", c.timeout)
}
