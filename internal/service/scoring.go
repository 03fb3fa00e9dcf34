package service

import (
	"github.com/agentroute/backend/internal/models"
)

// Per-criterion contributions are normalized to a 0..100 scale before the
// weight is applied, so a weight-10 criterion can always outvote a weight-1
// one regardless of which criteria are enabled.
const criterionScale = 100.0

// routeState is the optimizer's view of the partially built route: where the
// agent is, what the projected clock reads, and what was just visited.
type routeState struct {
	// Position is nil before the first stop (virtual day-start point), so
	// the distance and city_cluster criteria have no effect on the very
	// first choice.
	Position         *models.Coordinates
	Clock            int // minutes from midnight, projected
	PrevCity         string
	OpenHouseVisited bool
}

// candidateScore carries the weighted total plus the weighted per-criterion
// contributions in priority-list order, which drive the first tie-break.
type candidateScore struct {
	Total         float64
	Contributions []float64
	UsedFallback  bool
}

// scoreCandidate ranks one unvisited appointment as the potential next stop.
// Disabled criteria contribute zero but keep their slot so tie-breaking by
// list position stays stable.
func scoreCandidate(state routeState, cand models.Appointment, priorities []models.PriorityCriterion) candidateScore {
	score := candidateScore{Contributions: make([]float64, len(priorities))}

	for i, p := range priorities {
		if !p.Enabled {
			continue
		}
		var contribution float64
		switch p.Key {
		case KeyOpenHouse:
			if cand.IsOpenHouse && !state.OpenHouseVisited {
				contribution = criterionScale
			}
		case KeyAppointmentTime:
			diff := ParseClock(cand.StartTime) - state.Clock
			if diff < 0 {
				diff = -diff
			}
			if diff > 1440 {
				diff = 1440
			}
			contribution = float64(1440-diff) / 14.4
		case KeyDistance:
			if state.Position != nil {
				miles, exact := Miles(state.Position, cand.Coords())
				if !exact {
					score.UsedFallback = true
				}
				contribution = criterionScale / (1.0 + miles)
			}
		case KeyTimeAtHouse:
			at := cand.TimeAtHouse
			if at > 120 {
				at = 120
			}
			contribution = float64(120-at) / 1.2
		case KeyCityCluster:
			if state.PrevCity != "" && cand.City == state.PrevCity {
				contribution = criterionScale
			}
		}
		weighted := float64(p.Weight) * contribution
		score.Contributions[i] = weighted
		score.Total += weighted
	}
	return score
}

// betterCandidate reports whether candidate a (with score sa) should be
// picked over b. Equal totals are resolved by, in order: per-criterion
// contributions in priority-list order, ascending start_time, lexicographic
// property_address.
func betterCandidate(a models.Appointment, sa candidateScore, b models.Appointment, sb candidateScore) bool {
	if sa.Total != sb.Total {
		return sa.Total > sb.Total
	}
	for i := range sa.Contributions {
		if sa.Contributions[i] != sb.Contributions[i] {
			return sa.Contributions[i] > sb.Contributions[i]
		}
	}
	at, bt := ParseClock(a.StartTime), ParseClock(b.StartTime)
	if at != bt {
		return at < bt
	}
	return a.PropertyAddress < b.PropertyAddress
}
