// Package n8n fetches the dashboard tables from an n8n webhook that
// proxies the purchasing spreadsheet.
package n8n

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"compras/internal/ingest"
	"compras/internal/log"
)

// Client reads every table in a single webhook call.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger
}

type webhookResponse struct {
	Success bool                    `json:"success"`
	Data    map[string]webhookTable `json:"data"`
	Error   string                  `json:"error"`
}

type webhookTable struct {
	Values [][]any `json:"values"`
}

// NewClient builds a webhook client with the given request timeout.
func NewClient(url string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent(log.ComponentSheets),
	}
}

func (c *Client) FetchSnapshot(ctx context.Context) (ingest.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return ingest.Snapshot{}, fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ingest.Snapshot{}, fmt.Errorf("calling webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ingest.Snapshot{}, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	var payload webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ingest.Snapshot{}, fmt.Errorf("decoding webhook response: %w", err)
	}
	if !payload.Success {
		if payload.Error != "" {
			return ingest.Snapshot{}, fmt.Errorf("webhook reported failure: %s", payload.Error)
		}
		return ingest.Snapshot{}, fmt.Errorf("webhook reported failure")
	}

	raw := make(map[string][][]string, len(payload.Data))
	for key, table := range payload.Data {
		raw[key] = ingest.ValuesToStrings(table.Values)
	}

	snap := ingest.Snapshot{
		Tables:    ingest.ResolveTables(raw),
		FetchedAt: time.Now(),
		Source:    "n8n",
	}
	c.logger.Debug("webhook snapshot fetched",
		log.FieldRows, len(snap.Table(ingest.TableHistory)),
		log.FieldSource, snap.Source,
	)
	return snap, nil
}
