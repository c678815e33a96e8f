// Package vapi talks to the outbound voice-call provider.
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.vapi.ai"
	maxAttempts    = 3
	retryBackoff   = 500 * time.Millisecond
)

// ErrUnreadableResponse indicates the provider accepted the call but its
// response could not be decoded, so the call id is unknown. The call may be
// live; callers must not treat this as a failed dial.
var ErrUnreadableResponse = errors.New("vapi: accepted call response could not be decoded")

// ProviderError carries a non-201 response from the call provider. 4xx
// responses are never retried; the payload or credential is wrong.
type ProviderError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("vapi: call request returned status %d: %s", e.StatusCode, e.Body)
}

// CallRequest describes one outbound quote call.
type CallRequest struct {
	AssistantID    string
	VariableValues map[string]string
	CustomerNumber string
	PhoneNumberID  string
}

// Client submits call requests with a bearer credential.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient builds a provider client. A nil http.Client gets a
// bounded-timeout default.
func NewClient(client *http.Client, baseURL, apiKey string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// CreateCall submits the call and returns the provider's call id. Transport
// failures and 5xx responses are retried a bounded number of times; any
// other non-201 status comes back as a ProviderError immediately.
func (c *Client) CreateCall(ctx context.Context, call CallRequest) (string, error) {
	payload := map[string]any{
		"assistantId": call.AssistantID,
		"assistantOverrides": map[string]any{
			"variableValues": call.VariableValues,
		},
		"customer": map[string]any{
			"number": call.CustomerNumber,
		},
		"phoneNumberId": call.PhoneNumberID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal call payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		callID, retryable, err := c.submit(ctx, body)
		if err == nil {
			return callID, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", lastErr
}

func (c *Client) submit(ctx context.Context, body []byte) (callID string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/call/phone", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("build call request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("call request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		provErr := &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		return "", resp.StatusCode >= http.StatusInternalServerError, provErr
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnreadableResponse, err)
	}
	if result.ID == "" {
		return "", false, fmt.Errorf("%w: missing id", ErrUnreadableResponse)
	}
	return result.ID, false, nil
}
