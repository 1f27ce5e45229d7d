package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"travelagg/pkg/auth"
	"travelagg/pkg/logger"
)

// SnapshotPath is where a catalog service publishes its Document.
const SnapshotPath = "/api/catalog/snapshot"

// ErrAccessDenied is returned when the catalog service rejects the token.
var ErrAccessDenied = errors.New("catalog access denied")

// HTTPProvider fetches the catalog from another service, forwarding the
// caller's bearer token. Calls without one use the service token, if set.
type HTTPProvider struct {
	httpClient   *http.Client
	baseURL      string
	serviceToken string
	logger       logger.Client
}

func NewHTTPProvider(httpClient *http.Client, baseURL string, logger logger.Client) *HTTPProvider {
	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// WithServiceToken sets the token sent for calls that carry no caller token.
func (p *HTTPProvider) WithServiceToken(token string) *HTTPProvider {
	p.serviceToken = token
	return p
}

func (p *HTTPProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	url := p.baseURL + SnapshotPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.logger.Error("failed to build catalog request", logger.Err(err))
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if p.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.serviceToken)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", ErrAccessDenied, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api returned non-200 status: %d", resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return NewSnapshot(doc)
}
