// Package tasks defines the background queue surface: task types, payload
// codecs, the enqueue client and the worker that consumes them.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeDiscoveryRun asks the worker to discover companies for one request.
const TypeDiscoveryRun = "discovery:run"

// DiscoveryPayload identifies the request a discovery run operates on.
type DiscoveryPayload struct {
	RequestID string `json:"requestId"`
}

// NewDiscoveryTask builds a discovery task for the given request.
func NewDiscoveryTask(requestID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(DiscoveryPayload{RequestID: requestID.String()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDiscoveryRun, data), nil
}

// ParseDiscoveryPayload decodes and validates a discovery task payload.
func ParseDiscoveryPayload(task *asynq.Task) (uuid.UUID, error) {
	var payload DiscoveryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return uuid.Nil, fmt.Errorf("decode discovery payload: %w", err)
	}
	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid request id in discovery payload: %w", err)
	}
	return requestID, nil
}
