// Package fragment loads HTML fragments from the storefront server and
// splits them into renderable markup plus the scripts that must be
// activated after every swap.
package fragment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// Purpose tags a fragment request for logging. It has no behavioral effect.
type Purpose string

const (
	PurposeMenuItem  Purpose = "menu-item"
	PurposeModalView Purpose = "modal-view"
)

// Loader fetches fragment markup. Paths are resolved against the base URL;
// absolute URLs are used as given.
type Loader struct {
	client  *http.Client
	baseURL string
	logger  *logging.ChanneledLogger
}

// NewLoader creates a loader. A nil client falls back to http.DefaultClient.
func NewLoader(client *http.Client, baseURL string, logger *logging.ChanneledLogger) (*Loader, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("fragment loader requires a base URL")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Load fetches the fragment at url. Non-2xx responses become *httpx.HTTPError
// carrying the server's detail message; transport failures become
// *httpx.NetworkError. There are no retries and no loader-level timeout; the
// caller's context governs cancellation.
func (l *Loader) Load(ctx context.Context, url string, purpose Purpose) (string, error) {
	resolved := l.resolve(url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return "", &httpx.NetworkError{URL: resolved, Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if l.logger != nil {
			l.logger.Fragment().Warn("Fragment fetch failed", "url", resolved, "purpose", string(purpose), "error", err)
		}
		return "", &httpx.NetworkError{URL: resolved, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &httpx.NetworkError{URL: resolved, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if l.logger != nil {
			l.logger.Fragment().Warn("Fragment fetch rejected", "url", resolved, "purpose", string(purpose), "status", resp.StatusCode)
		}
		return "", &httpx.HTTPError{
			URL:        resolved,
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(body),
		}
	}

	if l.logger != nil {
		l.logger.Fragment().Debug("Fragment loaded", "url", resolved, "purpose", string(purpose), "bytes", len(body))
	}
	return string(body), nil
}

func (l *Loader) resolve(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return l.baseURL + url
}

// extractDetail pulls a human-readable message out of an error body. JSON
// bodies with "detail" or "message" keys win; otherwise a trimmed text body.
func extractDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
