package dto

// CreateMovingRequest captures a customer's new quote request.
type CreateMovingRequest struct {
	LocationFrom string `json:"location_from"`
	LocationTo   string `json:"location_to"`
	Items        string `json:"items"`
	Availability string `json:"availability"`
}

// UpdateMovingRequest captures partial updates to a stored request.
type UpdateMovingRequest struct {
	LocationFrom *string `json:"location_from,omitempty"`
	LocationTo   *string `json:"location_to,omitempty"`
	Items        *string `json:"items,omitempty"`
	Availability *string `json:"availability,omitempty"`
}

// SubmitResponse acknowledges an accepted request whose discovery runs in
// the background.
type SubmitResponse struct {
	RequestID string `json:"request_id"`
}
