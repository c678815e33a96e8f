// Package maps wraps the Google geocoding and places HTTP APIs used by
// company discovery.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoResults indicates the provider answered successfully with zero
// results. Callers must not confuse it with a failed lookup.
var ErrNoResults = errors.New("maps: no results")

const defaultBaseURL = "https://maps.googleapis.com"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// String renders the "lat,lng" form the places API expects.
func (l LatLng) String() string {
	return fmt.Sprintf("%f,%f", l.Lat, l.Lng)
}

// Place is one text-search result, before the details lookup.
type Place struct {
	PlaceID     string
	Name        string
	Address     string
	Rating      *float64
	RatingCount *int
	Latitude    float64
	Longitude   float64
}

// PlaceDetails carries the fields the details endpoint adds on top of a
// search result.
type PlaceDetails struct {
	FormattedPhoneNumber string
}

// Client issues geocoding, text-search and place-details requests.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient builds a maps client. A nil http.Client gets a bounded-timeout
// default; an empty baseURL targets the public Google endpoint.
func NewClient(client *http.Client, baseURL, apiKey string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
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

// Geocode resolves a free-text address to a coordinate pair. Zero results
// map to ErrNoResults. Google signals quota and credential problems through
// the status field on an HTTP 200, so anything other than OK or ZERO_RESULTS
// surfaces as a lookup error, never as ErrNoResults.
func (c *Client) Geocode(ctx context.Context, address string) (LatLng, error) {
	if strings.TrimSpace(address) == "" {
		return LatLng{}, fmt.Errorf("geocode: address must not be empty")
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.apiKey)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/maps/api/geocode/json", query, &payload); err != nil {
		return LatLng{}, err
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return LatLng{}, ErrNoResults
	default:
		return LatLng{}, fmt.Errorf("geocode returned status %s", payload.Status)
	}
	if len(payload.Results) == 0 {
		return LatLng{}, ErrNoResults
	}

	loc := payload.Results[0].Geometry.Location
	return LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// TextSearch runs a places text search around the given location.
func (c *Client) TextSearch(ctx context.Context, searchQuery string, location LatLng, radiusMeters int) ([]Place, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	query.Set("location", location.String())
	query.Set("radius", fmt.Sprintf("%d", radiusMeters))
	query.Set("key", c.apiKey)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID          string   `json:"place_id"`
			Name             string   `json:"name"`
			FormattedAddress string   `json:"formatted_address"`
			Rating           *float64 `json:"rating"`
			UserRatingsTotal *int     `json:"user_ratings_total"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", query, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("text search returned status %s", payload.Status)
	}

	places := make([]Place, 0, len(payload.Results))
	for _, result := range payload.Results {
		places = append(places, Place{
			PlaceID:     result.PlaceID,
			Name:        result.Name,
			Address:     result.FormattedAddress,
			Rating:      result.Rating,
			RatingCount: result.UserRatingsTotal,
			Latitude:    result.Geometry.Location.Lat,
			Longitude:   result.Geometry.Location.Lng,
		})
	}
	return places, nil
}

// PlaceDetails fetches contact details for one place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error) {
	if placeID == "" {
		return PlaceDetails{}, fmt.Errorf("place details: place id must not be empty")
	}

	query := url.Values{}
	query.Set("place_id", placeID)
	query.Set("key", c.apiKey)

	var payload struct {
		Status string `json:"status"`
		Result struct {
			FormattedPhoneNumber string `json:"formatted_phone_number"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, "/maps/api/place/details/json", query, &payload); err != nil {
		return PlaceDetails{}, err
	}
	if payload.Status != "" && payload.Status != "OK" {
		return PlaceDetails{}, fmt.Errorf("place details returned status %s", payload.Status)
	}

	return PlaceDetails{FormattedPhoneNumber: payload.Result.FormattedPhoneNumber}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build maps request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps request %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode maps response: %w", err)
	}
	return nil
}
