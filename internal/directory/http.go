package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olivermillard/mention/internal/types"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPError represents a non-2xx response from a directory endpoint.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("directory endpoint error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("directory endpoint error (%d)", e.Status)
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HTTPProvider fetches the directory JSON from a URL.
type HTTPProvider struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewHTTPProvider validates rawURL and returns a provider for it.
// A zero timeout uses the default.
func NewHTTPProvider(rawURL, token string, timeout time.Duration) (*HTTPProvider, error) {
	value := strings.TrimSpace(rawURL)
	if value == "" {
		return nil, fmt.Errorf("directory url cannot be empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid directory url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("directory url must use http or https")
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPProvider{
		url:   value,
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchDirectory GETs and decodes the directory.
func (p *HTTPProvider) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{Status: resp.StatusCode}
		var payload errorPayload
		if err := json.Unmarshal(data, &payload); err == nil && (payload.Message != "" || payload.Error != "") {
			httpErr.Message = payload.Message
			if httpErr.Message == "" {
				httpErr.Message = payload.Error
			}
		} else {
			httpErr.Message = strings.TrimSpace(string(data))
		}
		return nil, httpErr
	}
	return ParseEntries(data)
}
