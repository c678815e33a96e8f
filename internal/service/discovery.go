package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robomover/api/internal/entity"
	"github.com/robomover/api/internal/maps"
	"github.com/robomover/api/internal/repository"
)

const (
	// searchQuery is the fixed places query used for every request.
	searchQuery = "moving company"
	// searchRadiusMeters is 50 miles, the distance a local mover covers.
	searchRadiusMeters = 80467
	// maxCompaniesPerRequest caps how many companies one request contacts.
	maxCompaniesPerRequest = 5
)

// PlacesAPI is the slice of the maps client discovery needs.
type PlacesAPI interface {
	Geocode(ctx context.Context, address string) (maps.LatLng, error)
	TextSearch(ctx context.Context, query string, location maps.LatLng, radiusMeters int) ([]maps.Place, error)
	PlaceDetails(ctx context.Context, placeID string) (maps.PlaceDetails, error)
}

// DiscoveryService turns a moving request into a set of open inquiries:
// geocode the origin, search nearby movers, resolve each one's phone number
// and record it in the ledger.
type DiscoveryService struct {
	requests  repository.MovingRequestsRepository
	companies repository.CompaniesRepository
	inquiries repository.InquiriesRepository
	places    PlacesAPI
}

// NewDiscoveryService wires the discovery pipeline.
func NewDiscoveryService(requests repository.MovingRequestsRepository, companies repository.CompaniesRepository, inquiries repository.InquiriesRepository, places PlacesAPI) *DiscoveryService {
	return &DiscoveryService{
		requests:  requests,
		companies: companies,
		inquiries: inquiries,
		places:    places,
	}
}

// Run executes discovery for one request. Errors it returns are retryable
// from the queue's point of view; terminal outcomes (unknown request,
// unlocatable origin, zero usable companies) return nil so the task is not
// redelivered. Inquiries already written by an earlier delivery of the same
// task count toward the outcome, so a redelivered run still records it.
func (s *DiscoveryService) Run(ctx context.Context, requestID uuid.UUID) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			// Deleted between enqueue and execution.
			discoveryRunsTotal.WithLabelValues("request_gone").Inc()
			return nil
		}
		return err
	}

	origin, err := s.places.Geocode(ctx, request.LocationFrom)
	if err != nil {
		if errors.Is(err, maps.ErrNoResults) {
			discoveryRunsTotal.WithLabelValues("unlocatable").Inc()
			return nil
		}
		return fmt.Errorf("geocode origin: %w", err)
	}
	if err := s.requests.SetOriginCoordinates(ctx, request.ID, origin.Lat, origin.Lng); err != nil {
		return err
	}

	found, err := s.places.TextSearch(ctx, searchQuery, origin, searchRadiusMeters)
	if err != nil {
		return fmt.Errorf("search moving companies: %w", err)
	}
	if len(found) > maxCompaniesPerRequest {
		found = found[:maxCompaniesPerRequest]
	}

	created := 0
	open := 0
	seen := make(map[string]struct{})
	for _, place := range found {
		details, err := s.places.PlaceDetails(ctx, place.PlaceID)
		if err != nil {
			// One unreachable details lookup must not sink the batch.
			continue
		}

		phone := NormalizePhoneNumber(details.FormattedPhoneNumber)
		if phone == "" {
			continue
		}
		if _, dup := seen[phone]; dup {
			// Two search results sharing a phone line collapse into one inquiry.
			continue
		}
		seen[phone] = struct{}{}

		companyID, err := s.companies.ResolveOrCreate(ctx, &entity.MovingCompany{
			Name:        place.Name,
			PhoneNumber: phone,
			Address:     optional(place.Address),
			Rating:      place.Rating,
			RatingCount: place.RatingCount,
			Latitude:    &place.Latitude,
			Longitude:   &place.Longitude,
		})
		if err != nil {
			return fmt.Errorf("resolve company %q: %w", place.Name, err)
		}

		if _, err := s.inquiries.Create(ctx, request.ID, companyID, phone); err != nil {
			if errors.Is(err, repository.ErrInquiryDuplicate) {
				// An earlier delivery of this task already wrote the inquiry;
				// it is just as open as one created now.
				open++
				continue
			}
			return fmt.Errorf("create inquiry for company %q: %w", place.Name, err)
		}
		created++
		open++
	}

	if open == 0 {
		discoveryRunsTotal.WithLabelValues("no_companies").Inc()
		return nil
	}

	if err := s.requests.SetDiscoveryOutcome(ctx, request.ID, true, open); err != nil {
		return err
	}
	discoveryRunsTotal.WithLabelValues("ok").Inc()
	companiesDiscoveredTotal.Add(float64(created))
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
