package geocode

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("geocode not found")

// Candidate is one possible match for a free-text address query.
type Candidate struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	Confidence  float64 `json:"confidence"`
}

// Validation is the result of resolving a specific property address.
// Invalid addresses are an answer, not an error: the optimizer routes
// unvalidated stops with a fallback distance.
type Validation struct {
	Valid     bool    `json:"valid"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
}

// Geocoder resolves free-text addresses to coordinates. The route optimizer
// never calls it; geocoding happens on the CRUD path before computation.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
	Validate(ctx context.Context, address, city string) (Validation, error)
}

func BuildQuery(address string, city string) string {
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	parts := []string{}
	if address != "" {
		parts = append(parts, address)
	}
	if city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}
