package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hanzimap/internal/codec"
	"hanzimap/internal/domain"
)

// HTTPSource fetches a document over HTTP
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for an http(s) URL
func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{
		url:    rawURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithClient replaces the HTTP client
func (s *HTTPSource) WithClient(client *http.Client) *HTTPSource {
	s.client = client
	return s
}

// Load issues a single GET; there is no retry
func (s *HTTPSource) Load(ctx context.Context) (*domain.Document, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	c, err := codec.ForPath(u.Path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return c.Parse(resp.Body)
}

func (s *HTTPSource) String() string {
	return s.url
}
