package service

import (
	"math"

	"github.com/agentroute/backend/internal/models"
)

const DefaultDayStart = "09:00"

// ComputeRoute orders one day's appointments with a greedy constructive
// heuristic: at every step the highest-scoring unvisited appointment (per
// the user's weighted criteria) becomes the next stop. The result is a
// deterministic permutation of the input, never an error. Greedy and O(n^2):
// daily appointment counts are small, and determinism matters more than a
// globally optimal tour.
//
// The function is pure: no I/O, no shared state, safe for concurrent use.
func ComputeRoute(dayStart string, appointments []models.Appointment, priorities []models.PriorityCriterion) models.OptimizedRoute {
	if dayStart == "" {
		dayStart = DefaultDayStart
	}
	startMinutes := ParseClock(dayStart)

	if len(appointments) == 0 {
		return models.OptimizedRoute{
			Appointments:       []models.Appointment{},
			FinishTimeEstimate: FormatClock(startMinutes),
		}
	}

	priorities = NormalizePriorities(priorities)

	remaining := make([]models.Appointment, len(appointments))
	copy(remaining, appointments)

	state := routeState{Clock: startMinutes}
	clock := float64(startMinutes)

	ordered := make([]models.Appointment, 0, len(remaining))
	var missingIDs []string
	totalDistance := 0.0
	totalTravel := 0.0

	for len(remaining) > 0 {
		bestIdx := 0
		bestScore := scoreCandidate(state, remaining[0], priorities)
		for i := 1; i < len(remaining); i++ {
			s := scoreCandidate(state, remaining[i], priorities)
			if betterCandidate(remaining[i], s, remaining[bestIdx], bestScore) {
				bestIdx = i
				bestScore = s
			}
		}

		chosen := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		// The leg from the virtual day-start point is free: the agent
		// begins the day at the first stop.
		if len(ordered) > 0 {
			miles, _ := Miles(state.Position, chosen.Coords())
			totalDistance += miles
			travel := TravelMinutes(miles)
			totalTravel += travel
			clock += travel
		}
		clock += float64(chosen.TimeAtHouse)

		chosen.OrderIndex = len(ordered)
		ordered = append(ordered, chosen)
		if chosen.Coords() == nil {
			missingIDs = append(missingIDs, chosen.ID)
		}

		state.Position = chosen.Coords()
		state.PrevCity = chosen.City
		state.Clock = int(math.Round(clock))
		if chosen.IsOpenHouse {
			state.OpenHouseVisited = true
		}
	}

	totalOnSite := 0
	for _, a := range ordered {
		totalOnSite += a.TimeAtHouse
	}
	totalTime := totalOnSite + int(math.Round(totalTravel))

	return models.OptimizedRoute{
		Appointments:          ordered,
		TotalEstimatedTime:    totalTime,
		TotalDistanceEstimate: math.Round(totalDistance*10) / 10,
		FinishTimeEstimate:    FormatClock(startMinutes + totalTime),
		MissingCoordinateIDs:  missingIDs,
	}
}
