package entity

import (
	"time"

	"github.com/google/uuid"
)

// MovingRequest is a customer's submitted move awaiting quotes.
// QuotesFound and CompaniesFound are written once by discovery; they keep
// their zero values when discovery turns up no usable companies.
type MovingRequest struct {
	ID             uuid.UUID  `json:"id"`
	LocationFrom   string     `json:"location_from"`
	LocationTo     string     `json:"location_to"`
	FromLatitude   *float64   `json:"from_latitude,omitempty"`
	FromLongitude  *float64   `json:"from_longitude,omitempty"`
	Items          string     `json:"items"`
	Availability   string     `json:"availability"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	QuotesFound    bool       `json:"quotes_found"`
	CompaniesFound int        `json:"companies_found"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
