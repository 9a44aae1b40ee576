package notary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPNotary talks to the external notarization service over HTTP. The
// inbound request's Authorization header and cookies are forwarded so the
// service can resolve the session to an address.
type HTTPNotary struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPNotary(baseURL string) *HTTPNotary {
	return &HTTPNotary{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type addressResponse struct {
	Address string `json:"address"`
}

type nowResponse struct {
	// Milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}

// Address resolves the caller's identity via the notary service. An empty
// address with a nil error means the caller is simply not authenticated.
func (n *HTTPNotary) Address(ctx context.Context, r *http.Request) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/address", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for _, c := range r.Cookies() {
		req.AddCookie(c)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("notary address request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("notary address request returned HTTP %d", resp.StatusCode)
	}

	var body addressResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding notary address response: %w", err)
	}
	return body.Address, nil
}

// Now fetches the trusted timestamp from the notary service.
func (n *HTTPNotary) Now(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/now", nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("notary time request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("notary time request returned HTTP %d", resp.StatusCode)
	}

	var body nowResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("decoding notary time response: %w", err)
	}
	return time.UnixMilli(body.Timestamp).UTC(), nil
}
