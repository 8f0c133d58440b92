package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/quietfeed/quietfeed/internal/adapters/config"
	"github.com/quietfeed/quietfeed/pkg/logger"
)

// RawRecord is one unvalidated headline payload as received on the wire.
// Every field is optional and loosely typed; normalization happens in
// the ingestion pipeline.
type RawRecord map[string]interface{}

// Provider fetches raw headline records from the upstream source
type Provider interface {
	FetchRaw(ctx context.Context) ([]RawRecord, error)
}

// Client is the HTTP client for the raw headline provider
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new upstream headline client
func NewClient(cfg *config.UpstreamConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchRaw fetches the latest raw headlines. The response body is either
// {"headlines": [...]} or a bare array of records.
func (c *Client) FetchRaw(ctx context.Context) ([]RawRecord, error) {
	url := c.baseURL + "/api/v1/headlines/raw"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	logger.Debug("fetched raw headlines",
		zap.Int("count", len(records)),
	)

	return records, nil
}

// decodeRecords accepts either an object wrapping a headlines array or a
// bare array
func decodeRecords(body []byte) ([]RawRecord, error) {
	var envelope struct {
		Headlines []RawRecord `json:"headlines"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Headlines != nil {
		return envelope.Headlines, nil
	}

	var bare []RawRecord
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}
