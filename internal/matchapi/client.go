// Package matchapi talks to the club's upstream match API. The API is
// authoritative but occasionally stale or inconsistent, so every field
// it returns is treated as optional and untrusted.
package matchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// HTTPClient is the production implementation of Client.
type HTTPClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new match API client.
func NewClient(baseURL string) Client {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

// Ensure HTTPClient implements the Client interface.
var _ Client = (*HTTPClient)(nil)

// GetMatches fetches a raw match list for one data type.
func (c *HTTPClient) GetMatches(ctx context.Context, params ListParams) ([]RawMatch, error) {
	q := url.Values{}
	q.Set("dataType", string(params.DataType))
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	endpoint := fmt.Sprintf("%s/api/matches?%s", c.BaseURL, q.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var matches []RawMatch
	if err := json.Unmarshal(body, &matches); err != nil {
		// Some deployments wrap the list in an envelope.
		var envelope struct {
			Matches []RawMatch `json:"matches"`
		}
		if err2 := json.Unmarshal(body, &envelope); err2 != nil {
			return nil, fmt.Errorf("failed to decode match list: %w", err)
		}
		matches = envelope.Matches
	}
	log.Debug("Fetched match list", "dataType", params.DataType, "count", len(matches))
	return matches, nil
}

// GetMatchDetail fetches the per-match detail feed (events, clock
// state, penalties, player stats).
func (c *HTTPClient) GetMatchDetail(ctx context.Context, apiMatchID string, includeEvents bool) (RawDetail, error) {
	endpoint := fmt.Sprintf("%s/api/matches/%s?includeEvents=%t", c.BaseURL, url.PathEscape(apiMatchID), includeEvents)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var detail RawDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode match detail: %w", err)
	}
	log.Debug("Fetched match detail", "apiMatchID", apiMatchID)
	return detail, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hhf-live/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from match API", "status", resp.StatusCode, "url", endpoint, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
