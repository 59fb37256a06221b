package zoosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/finconsgroup/zooadmin/pkg/idx"
)

// hasBody reports whether the verb carries a JSON-encoded request body.
func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// do performs an authenticated request and decodes the response into out.
//
// Preconditions: an Authorization header must be derivable, otherwise the
// call fails with ErrNotAuthenticated and no network I/O happens. Non-2xx
// statuses map to the typed taxonomy in errors.go. A 2xx body is parsed as
// JSON into out; if out is a *string and the body is not JSON, the raw text
// is returned instead (some endpoints, like the connectivity probe, answer
// plain text). Passing a nil out discards the body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	header, err := c.authorization()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil && hasBody(method) {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", idx.New().String())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode)
	}

	return decodeBody(raw, out)
}

// decodeBody unmarshals a 2xx response body into out, falling back to the
// raw text for *string targets when the body is not valid JSON.
func decodeBody(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		if s, ok := out.(*string); ok {
			*s = string(raw)
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
