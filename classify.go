package aiornot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeReport parses a 2xx payload into out, or classifies the failure into
// the error taxonomy.
func decodeReport(resp *rawResponse, out any) error {
	if err := checkResponse(resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("failed to decode report: %w", err)
	}
	return nil
}

func checkResponse(resp *rawResponse) error {
	if resp.status >= 200 && resp.status < 300 {
		return nil
	}
	return classifyError(resp)
}

// classifyError maps a non-2xx response onto the error taxonomy. The message
// comes from the body's "detail" field when present; 422 bodies carrying a
// list of {loc, msg} objects are joined with "; ". Unparseable bodies are used
// verbatim.
func classifyError(resp *rawResponse) *APIError {
	var body map[string]any
	message := strings.TrimSpace(string(resp.body))
	if err := json.Unmarshal(resp.body, &body); err == nil {
		message = detailMessage(body)
	} else {
		body = nil
	}

	kind := KindAPI
	switch {
	case resp.status == 401:
		kind = KindAuthentication
		if message == "" {
			message = "Invalid or missing API key"
		}
	case resp.status == 422:
		kind = KindValidation
		if message == "" {
			message = "Request validation failed"
		}
	case resp.status == 429:
		kind = KindRateLimit
		if message == "" {
			message = "Rate limit exceeded"
		}
	case resp.status >= 500:
		kind = KindServer
		if message == "" {
			message = "Server error"
		}
	default:
		if message == "" {
			message = fmt.Sprintf("API error: %d", resp.status)
		}
	}

	return &APIError{
		Kind:       kind,
		StatusCode: resp.status,
		Message:    message,
		Body:       body,
	}
}

func detailMessage(body map[string]any) string {
	detail, ok := body["detail"]
	if !ok {
		data, err := json.Marshal(body)
		if err != nil {
			return ""
		}
		return string(data)
	}

	switch d := detail.(type) {
	case string:
		return d
	case []any:
		// FastAPI validation format: a list of {loc, msg} objects.
		parts := make([]string, 0, len(d))
		for _, item := range d {
			obj, ok := item.(map[string]any)
			if !ok {
				parts = append(parts, fmt.Sprintf("%v", item))
				continue
			}
			loc := []byte("[]")
			if obj["loc"] != nil {
				loc, _ = json.Marshal(obj["loc"])
			}
			msg, _ := obj["msg"].(string)
			parts = append(parts, fmt.Sprintf("%s: %s", loc, msg))
		}
		return strings.Join(parts, "; ")
	default:
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprintf("%v", d)
		}
		return string(data)
	}
}
