package entity

import (
	"time"

	"github.com/google/uuid"
)

// MovingCompany represents a mover discovered near a request's origin.
// The phone number is the business key: discovery deduplicates on it, so
// there is at most one row per phone number.
type MovingCompany struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Address     *string   `json:"address,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	RatingCount *int      `json:"rating_count,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
