package embedctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// HealthReport mirrors the service's /health payload
type HealthReport struct {
	// Status is the service's self-reported health ("healthy")
	Status string `json:"status"`
	// Device is the compute device the service loaded its models on
	Device string `json:"device"`
}

// MemoryReport mirrors the service's /memory payload
type MemoryReport struct {
	// UsedGB is the service process's resident memory in gigabytes
	UsedGB float64 `json:"used_gb"`
	// Percent is host-wide memory utilization
	Percent float64 `json:"percent"`
}

// HealthClient talks to the embedding service's diagnostic HTTP endpoints.
// The probe/fetch split matches how the endpoints are used: a cheap
// reachability check first, then a body fetch for display.
type HealthClient struct {
	// HealthURL is the full health endpoint URL
	HealthURL string

	// HTTPClient issues the requests; its Timeout bounds each call
	HTTPClient *http.Client
}

// HealthOption configures a HealthClient
type HealthOption func(*HealthClient)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(c *http.Client) HealthOption {
	return func(h *HealthClient) {
		h.HTTPClient = c
	}
}

// NewHealthClient creates a HealthClient for the given health endpoint URL
func NewHealthClient(healthURL string, opts ...HealthOption) *HealthClient {
	h := &HealthClient{
		HealthURL:  healthURL,
		HTTPClient: &http.Client{Timeout: DefaultHealthTimeout},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// MemoryURL derives the sibling /memory endpoint from the health URL
func (h *HealthClient) MemoryURL() string {
	u, err := url.Parse(h.HealthURL)
	if err != nil {
		return h.HealthURL
	}
	u.Path = path.Join(path.Dir(u.Path), "memory")
	return u.String()
}

// get issues one GET and returns the body on a 2xx response
func (h *HealthClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, fmt.Errorf("%w: %s returned %s", ErrUnhealthy, rawURL, resp.Status)
	}
	return body, nil
}

// Probe checks reachability of the health endpoint. The body is discarded;
// only success or failure matters.
func (h *HealthClient) Probe(ctx context.Context) error {
	_, err := h.get(ctx, h.HealthURL)
	if err != nil {
		return &OpError{Op: OpHealth, Target: h.HealthURL, Err: err}
	}
	return nil
}

// Fetch retrieves the health payload
func (h *HealthClient) Fetch(ctx context.Context) ([]byte, error) {
	body, err := h.get(ctx, h.HealthURL)
	if err != nil {
		return nil, &OpError{Op: OpHealth, Target: h.HealthURL, Err: err}
	}
	return body, nil
}

// FetchMemory retrieves the memory payload
func (h *HealthClient) FetchMemory(ctx context.Context) ([]byte, error) {
	memURL := h.MemoryURL()
	body, err := h.get(ctx, memURL)
	if err != nil {
		return nil, &OpError{Op: OpMemory, Target: memURL, Err: err}
	}
	return body, nil
}

// Report decodes a health payload
func (h *HealthClient) Report(ctx context.Context) (HealthReport, error) {
	body, err := h.Fetch(ctx)
	if err != nil {
		return HealthReport{}, err
	}

	var r HealthReport
	if err := json.Unmarshal(body, &r); err != nil {
		return HealthReport{}, &OpError{Op: OpHealth, Target: h.HealthURL, Err: err}
	}
	return r, nil
}

// PrettyJSON reindents a JSON document for display. The document is treated
// as opaque text; no field is inspected.
func PrettyJSON(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
