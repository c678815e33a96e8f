// Package priceextract calls the transcript-analysis worker that pulls a
// quoted price out of a call transcript when the provider's structured
// analysis did not include one.
package priceextract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// Extractor asks an analysis backend for the price quoted in a transcript.
type Extractor interface {
	ExtractPrice(ctx context.Context, transcript, requestID string) (float64, error)
}

// Client posts transcripts to the extraction worker.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds an extraction client, auto-configuring an ID-token client
// for service-to-service calls when none is supplied.
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		panic("baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), baseURL)
		if err != nil {
			client = &http.Client{Timeout: 20 * time.Second}
		} else {
			client = idc
		}
	}
	return &Client{client: client, baseURL: baseURL}
}

// ExtractPrice submits the transcript and returns the extracted price.
func (c *Client) ExtractPrice(ctx context.Context, transcript, requestID string) (float64, error) {
	body, err := json.Marshal(map[string]string{"transcript": transcript})
	if err != nil {
		return 0, fmt.Errorf("marshal extraction payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("extraction worker returned status %d: %s", resp.StatusCode, extractError(resp.Body))
	}

	var workerResp struct {
		Data struct {
			Price *float64 `json:"price"`
		} `json:"data"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&workerResp); err != nil && err != io.EOF {
		return 0, fmt.Errorf("decode extraction response: %w", err)
	}
	if workerResp.Error != "" {
		return 0, fmt.Errorf("extraction worker error: %s", workerResp.Error)
	}
	if workerResp.Data.Price == nil {
		return 0, fmt.Errorf("extraction response missing price")
	}
	return *workerResp.Data.Price, nil
}

func extractError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "extraction worker returned an error"
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}

var _ Extractor = (*Client)(nil)
