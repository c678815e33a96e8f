package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnsetPriceSentinel is the value rendered to clients while no quote has
// been captured. Storage keeps the price NULL so a genuine zero quote stays
// distinguishable.
const UnsetPriceSentinel = -1

// Inquiry tracks one company's quote process for one request.
// Lifecycle: created (no call id, nil price) -> dispatched (call id set,
// in progress) -> completed (price/transcript/summary/duration recorded).
type Inquiry struct {
	ID              uuid.UUID `json:"id"`
	RequestID       uuid.UUID `json:"request_id"`
	CompanyID       uuid.UUID `json:"company_id"`
	PhoneNumber     string    `json:"phone_number"`
	ProviderCallID  *string   `json:"provider_call_id,omitempty"`
	Price           *float64  `json:"-"`
	Summary         string    `json:"summary"`
	Transcript      string    `json:"transcript"`
	DurationMinutes *float64  `json:"duration_minutes,omitempty"`
	InProgress      bool      `json:"in_progress"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PriceOrSentinel returns the quoted price, or UnsetPriceSentinel while the
// quote is still pending.
func (i *Inquiry) PriceOrSentinel() float64 {
	if i.Price == nil {
		return UnsetPriceSentinel
	}
	return *i.Price
}
