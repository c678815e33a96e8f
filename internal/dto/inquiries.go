package dto

import "github.com/robomover/api/internal/entity"

// InquiryResponse is the client view of an inquiry. Pending quotes render
// the sentinel price instead of omitting the field.
type InquiryResponse struct {
	ID              string   `json:"id"`
	RequestID       string   `json:"request_id"`
	CompanyID       string   `json:"company_id"`
	PhoneNumber     string   `json:"phone_number"`
	ProviderCallID  *string  `json:"provider_call_id,omitempty"`
	Price           float64  `json:"price"`
	Summary         string   `json:"summary"`
	Transcript      string   `json:"transcript"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	InProgress      bool     `json:"in_progress"`
}

// NewInquiryResponse maps a stored inquiry to its client view.
func NewInquiryResponse(inquiry *entity.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:              inquiry.ID.String(),
		RequestID:       inquiry.RequestID.String(),
		CompanyID:       inquiry.CompanyID.String(),
		PhoneNumber:     inquiry.PhoneNumber,
		ProviderCallID:  inquiry.ProviderCallID,
		Price:           inquiry.PriceOrSentinel(),
		Summary:         inquiry.Summary,
		Transcript:      inquiry.Transcript,
		DurationMinutes: inquiry.DurationMinutes,
		InProgress:      inquiry.InProgress,
	}
}

// NewInquiryResponses maps a slice of inquiries.
func NewInquiryResponses(inquiries []entity.Inquiry) []InquiryResponse {
	responses := make([]InquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		responses = append(responses, NewInquiryResponse(&inquiries[i]))
	}
	return responses
}
