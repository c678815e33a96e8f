package vapi

// MessageTypeEndOfCallReport is the only webhook message variant this
// service acts on; everything else is acknowledged and dropped.
const MessageTypeEndOfCallReport = "end-of-call-report"

// WebhookEnvelope is the provider-shaped webhook body.
type WebhookEnvelope struct {
	Message ReportMessage `json:"message"`
}

// ReportMessage carries the end-of-call fields at their fixed nested paths.
type ReportMessage struct {
	Type            string          `json:"type"`
	Call            CallRef         `json:"call"`
	Customer        CustomerRef     `json:"customer"`
	Analysis        ReportAnalysis  `json:"analysis"`
	Summary         string          `json:"summary"`
	Transcript      string          `json:"transcript"`
	DurationMinutes *float64        `json:"durationMinutes"`
}

// CallRef identifies the provider call the report belongs to.
type CallRef struct {
	ID string `json:"id"`
}

// CustomerRef carries the dialed number.
type CustomerRef struct {
	Number string `json:"number"`
}

// ReportAnalysis holds the provider's structured post-call extraction.
type ReportAnalysis struct {
	StructuredData StructuredData `json:"structuredData"`
}

// StructuredData is the subset of the analysis payload the ledger stores.
type StructuredData struct {
	Price *float64 `json:"price"`
}

// IsEndOfCallReport reports whether the envelope is the variant the ledger
// ingests.
func (e *WebhookEnvelope) IsEndOfCallReport() bool {
	return e.Message.Type == MessageTypeEndOfCallReport
}
