package service

import (
	"fmt"

	"github.com/agentroute/backend/internal/models"
)

const (
	KeyOpenHouse       = "open_house"
	KeyAppointmentTime = "appointment_time"
	KeyDistance        = "distance"
	KeyTimeAtHouse     = "time_at_house"
	KeyCityCluster     = "city_cluster"
)

const (
	minWeight = 1
	maxWeight = 10
)

// ValidationError reports a malformed priority list. Field names the
// offending criterion key (or "priorities" for list-level problems).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultPriorities returns the built-in criteria in their default order.
// The list order doubles as tie-break priority, so callers must not re-sort.
func DefaultPriorities() []models.PriorityCriterion {
	return []models.PriorityCriterion{
		{Key: KeyOpenHouse, Label: "Open House First", Weight: 5, Enabled: true},
		{Key: KeyAppointmentTime, Label: "Appointment Time", Weight: 4, Enabled: true},
		{Key: KeyDistance, Label: "Shortest Distance", Weight: 3, Enabled: true},
		{Key: KeyTimeAtHouse, Label: "Time at House", Weight: 2, Enabled: true},
		{Key: KeyCityCluster, Label: "Same City Cluster", Weight: 1, Enabled: true},
	}
}

// NormalizePriorities fills any missing criterion with its built-in default.
// Submitted items keep their submitted positions; defaults for absent keys
// are appended in default order.
func NormalizePriorities(list []models.PriorityCriterion) []models.PriorityCriterion {
	seen := map[string]bool{}
	out := make([]models.PriorityCriterion, 0, 5)
	for _, c := range list {
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		out = append(out, c)
	}
	for _, d := range DefaultPriorities() {
		if !seen[d.Key] {
			out = append(out, d)
		}
	}
	return out
}

// ValidatePriorities enforces the write contract: each of the five keys
// exactly once, every weight an integer in [1,10].
func ValidatePriorities(list []models.PriorityCriterion) error {
	known := map[string]bool{}
	for _, d := range DefaultPriorities() {
		known[d.Key] = true
	}

	counts := map[string]int{}
	for _, c := range list {
		if !known[c.Key] {
			return &ValidationError{Field: c.Key, Message: "unknown criterion"}
		}
		counts[c.Key]++
		if counts[c.Key] > 1 {
			return &ValidationError{Field: c.Key, Message: "criterion listed more than once"}
		}
		if c.Weight < minWeight || c.Weight > maxWeight {
			return &ValidationError{
				Field:   c.Key,
				Message: fmt.Sprintf("weight must be between %d and %d, got %d", minWeight, maxWeight, c.Weight),
			}
		}
	}
	for _, d := range DefaultPriorities() {
		if counts[d.Key] == 0 {
			return &ValidationError{Field: d.Key, Message: "criterion missing"}
		}
	}
	return nil
}
