package service

import (
	"math"
	"testing"

	"github.com/agentroute/backend/internal/models"
)

func TestMilesKnownPair(t *testing.T) {
	la := &models.Coordinates{Lat: 34.0522, Lon: -118.2437}
	sf := &models.Coordinates{Lat: 37.7749, Lon: -122.4194}

	miles, exact := Miles(la, sf)
	if !exact {
		t.Fatalf("expected exact distance")
	}
	// LA to SF is roughly 347 great-circle miles.
	if math.Abs(miles-347) > 5 {
		t.Fatalf("unexpected distance: %f", miles)
	}
}

func TestMilesZeroForSamePoint(t *testing.T) {
	p := &models.Coordinates{Lat: 34.0522, Lon: -118.2437}
	miles, exact := Miles(p, p)
	if !exact || miles != 0 {
		t.Fatalf("expected zero distance, got %f", miles)
	}
}

func TestMilesFallbackWhenCoordinatesMissing(t *testing.T) {
	p := &models.Coordinates{Lat: 34.0522, Lon: -118.2437}
	for _, pair := range [][2]*models.Coordinates{{nil, p}, {p, nil}, {nil, nil}} {
		miles, exact := Miles(pair[0], pair[1])
		if exact {
			t.Fatalf("expected fallback signal for %v", pair)
		}
		if miles != FallbackMiles {
			t.Fatalf("expected %f, got %f", FallbackMiles, miles)
		}
	}
}

func TestTravelMinutes(t *testing.T) {
	if got := TravelMinutes(25); got != 60 {
		t.Fatalf("expected 60 minutes for 25 miles, got %f", got)
	}
	if got := TravelMinutes(0); got != 0 {
		t.Fatalf("expected 0 minutes, got %f", got)
	}
}
