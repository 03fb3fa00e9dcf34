package service

import (
	"github.com/agentroute/backend/internal/models"
	"github.com/agentroute/backend/internal/utils"
)

const (
	// FallbackMiles is assumed between two stops when either address was
	// never geocode-validated. Routes must still come out even with
	// unvalidated addresses, so missing coordinates are an advisory,
	// not an error.
	FallbackMiles = 5.0

	// AverageSpeedMph reflects urban/suburban driving with stops.
	AverageSpeedMph = 25.0
)

// Miles returns the great-circle distance between two stops. The boolean is
// false when either coordinate is missing and the fallback constant was used.
func Miles(a, b *models.Coordinates) (float64, bool) {
	if a == nil || b == nil {
		return FallbackMiles, false
	}
	return utils.HaversineMiles(a.Lat, a.Lon, b.Lat, b.Lon), true
}

// TravelMinutes converts a distance into an estimated drive time at the
// fixed assumed average speed.
func TravelMinutes(miles float64) float64 {
	return miles / AverageSpeedMph * 60
}
