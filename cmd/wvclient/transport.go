package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// newHTTPClient budgets a 10s overall deadline with 5s dial/TLS
// handshake timeouts, tuned for a license endpoint rather than a bulk
// content path.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}

// postBinary submits body to url and returns the response body,
// classifying the failure cases the original challenge/response flow
// runs into in practice: a Cloudflare block page, a 404 for an
// unrecognized provider, and a rate limit that names its own retry
// window.
func postBinary(client *http.Client, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request license endpoint: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return out, nil
	case http.StatusForbidden:
		return nil, fmt.Errorf("license endpoint returned 403 (possibly a Cloudflare block page)")
	case http.StatusNotFound:
		return nil, fmt.Errorf("license endpoint returned 404: unrecognized provider or path")
	case http.StatusTooManyRequests:
		retry := resp.Header.Get("Retry-After")
		return nil, fmt.Errorf("license endpoint rate-limited the request (retry-after=%s)", retry)
	default:
		return nil, fmt.Errorf("license endpoint returned unexpected status %d", resp.StatusCode)
	}
}
