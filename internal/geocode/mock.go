package geocode

import (
	"context"
	"strings"

	"github.com/agentroute/backend/internal/utils"
)

// MockGeocoder derives stable pseudo-coordinates from the query text. Used
// when no geocoder URL is configured (dev, tests): same address in, same
// coordinates out.
type MockGeocoder struct{}

func (MockGeocoder) Search(_ context.Context, query string) ([]Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrNotFound
	}
	return []Candidate{mockCandidate(query)}, nil
}

func (MockGeocoder) Validate(_ context.Context, address, city string) (Validation, error) {
	if strings.TrimSpace(address) == "" {
		return Validation{Valid: false}, nil
	}
	c := mockCandidate(BuildQuery(address, city))
	return Validation{Valid: true, Latitude: c.Latitude, Longitude: c.Longitude, City: city}, nil
}

func mockCandidate(query string) Candidate {
	h := utils.HashStringToUint64(query)
	// Spread results over a plausible lat/lon box.
	lat := 33.0 + float64(h%2000)/1000.0
	lon := -119.0 + float64((h/2000)%3000)/1000.0
	return Candidate{
		DisplayName: query,
		Latitude:    lat,
		Longitude:   lon,
		Confidence:  0.5,
	}
}
