package dto

// DispatchCallRequest asks for an outbound quote call to one company on
// behalf of one moving request.
type DispatchCallRequest struct {
	RequestID   string `json:"request_id"`
	CompanyID   string `json:"company_id"`
	PhoneNumber string `json:"phone_number"`
}

// DispatchCallResponse reports whether the call was placed. A declined
// dispatch carries a human-readable reason instead of an HTTP error so the
// caller can keep iterating over companies.
type DispatchCallResponse struct {
	Dispatched bool   `json:"dispatched"`
	CallID     string `json:"call_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
