package service

import (
	"reflect"
	"testing"

	"github.com/agentroute/backend/internal/models"
)

func coords(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func testAppointment(id, address, city, start string, timeAtHouse int, openHouse bool, lat, lon *float64) models.Appointment {
	return models.Appointment{
		ID:              id,
		ClientID:        "c1",
		PropertyAddress: address,
		City:            city,
		Date:            "2025-06-01",
		StartTime:       start,
		EndTime:         "17:00",
		TimeAtHouse:     timeAtHouse,
		IsOpenHouse:     openHouse,
		Latitude:        lat,
		Longitude:       lon,
	}
}

func TestComputeRouteEmptyInput(t *testing.T) {
	route := ComputeRoute("", nil, DefaultPriorities())
	if len(route.Appointments) != 0 {
		t.Fatalf("expected no appointments, got %d", len(route.Appointments))
	}
	if route.TotalEstimatedTime != 0 || route.TotalDistanceEstimate != 0 {
		t.Fatalf("expected zero totals, got time=%d distance=%f", route.TotalEstimatedTime, route.TotalDistanceEstimate)
	}
	if route.FinishTimeEstimate != "09:00" {
		t.Fatalf("expected finish at day start, got %s", route.FinishTimeEstimate)
	}
	if route.MissingCoordinateIDs != nil {
		t.Fatalf("expected no advisories, got %v", route.MissingCoordinateIDs)
	}
}

func TestComputeRouteIsPermutation(t *testing.T) {
	laLat, laLon := coords(34.05, -118.24)
	appts := []models.Appointment{
		testAppointment("a1", "1 Alpha St", "LA", "09:00", 30, false, laLat, laLon),
		testAppointment("a2", "2 Beta Ave", "LA", "10:00", 45, true, laLat, laLon),
		testAppointment("a3", "3 Gamma Rd", "SF", "09:30", 20, false, nil, nil),
		testAppointment("a4", "4 Delta Blvd", "LA", "13:00", 60, false, laLat, laLon),
	}

	route := ComputeRoute("09:00", appts, DefaultPriorities())
	if len(route.Appointments) != len(appts) {
		t.Fatalf("expected %d stops, got %d", len(appts), len(route.Appointments))
	}

	seen := map[string]bool{}
	for i, a := range route.Appointments {
		if seen[a.ID] {
			t.Fatalf("duplicate appointment %s in output", a.ID)
		}
		seen[a.ID] = true
		if a.OrderIndex != i {
			t.Fatalf("expected order_index %d, got %d", i, a.OrderIndex)
		}
	}
	for _, a := range appts {
		if !seen[a.ID] {
			t.Fatalf("appointment %s missing from output", a.ID)
		}
	}
}

func TestComputeRouteDeterministic(t *testing.T) {
	laLat, laLon := coords(34.05, -118.24)
	sfLat, sfLon := coords(37.77, -122.42)
	appts := []models.Appointment{
		testAppointment("a1", "1 Alpha St", "LA", "09:00", 30, false, laLat, laLon),
		testAppointment("a2", "2 Beta Ave", "SF", "10:00", 45, true, sfLat, sfLon),
		testAppointment("a3", "3 Gamma Rd", "SF", "09:30", 20, false, nil, nil),
	}

	first := ComputeRoute("09:00", appts, DefaultPriorities())
	second := ComputeRoute("09:00", appts, DefaultPriorities())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical routes, got\n%+v\nvs\n%+v", first, second)
	}
}

func TestComputeRouteTimeAdditivity(t *testing.T) {
	laLat, laLon := coords(34.05, -118.24)
	pasLat, pasLon := coords(34.15, -118.14)
	appts := []models.Appointment{
		testAppointment("a1", "1 Alpha St", "LA", "09:00", 30, false, laLat, laLon),
		testAppointment("a2", "2 Beta Ave", "Pasadena", "11:00", 45, false, pasLat, pasLon),
	}

	route := ComputeRoute("09:00", appts, DefaultPriorities())

	onSite := 0
	for _, a := range route.Appointments {
		onSite += a.TimeAtHouse
	}
	travel := 0.0
	for i := 0; i < len(route.Appointments)-1; i++ {
		miles, _ := Miles(route.Appointments[i].Coords(), route.Appointments[i+1].Coords())
		travel += TravelMinutes(miles)
	}

	diff := route.TotalEstimatedTime - onSite - int(travel)
	if diff < -1 || diff > 1 {
		t.Fatalf("totals not additive: total=%d onSite=%d travel=%f", route.TotalEstimatedTime, onSite, travel)
	}

	wantFinish := FormatClock(ParseClock("09:00") + route.TotalEstimatedTime)
	if route.FinishTimeEstimate != wantFinish {
		t.Fatalf("expected finish %s, got %s", wantFinish, route.FinishTimeEstimate)
	}
}

func TestComputeRouteMissingCoordinatesAdvisory(t *testing.T) {
	laLat, laLon := coords(34.05, -118.24)
	appts := []models.Appointment{
		testAppointment("a1", "1 Alpha St", "LA", "09:00", 30, false, laLat, laLon),
		testAppointment("a2", "2 Beta Ave", "LA", "10:00", 45, false, nil, nil),
	}

	route := ComputeRoute("09:00", appts, DefaultPriorities())
	if len(route.Appointments) != 2 {
		t.Fatalf("stop without coordinates must still be routed, got %d stops", len(route.Appointments))
	}
	if len(route.MissingCoordinateIDs) != 1 || route.MissingCoordinateIDs[0] != "a2" {
		t.Fatalf("expected advisory for a2, got %v", route.MissingCoordinateIDs)
	}
	if route.TotalDistanceEstimate != FallbackMiles {
		t.Fatalf("expected fallback leg distance %f, got %f", FallbackMiles, route.TotalDistanceEstimate)
	}
}

func TestComputeRouteOpenHousePrecedence(t *testing.T) {
	laLat, laLon := coords(34.05, -118.24)
	appts := []models.Appointment{
		testAppointment("a1", "1 Alpha St", "LA", "09:00", 30, false, laLat, laLon),
		testAppointment("a2", "2 Beta Ave", "LA", "09:00", 30, true, laLat, laLon),
	}

	withOpenHouse := ComputeRoute("09:00", appts, DefaultPriorities())

	disabled := DefaultPriorities()
	disabled[0].Enabled = false
	withoutOpenHouse := ComputeRoute("09:00", appts, disabled)

	posWith := indexOf(t, withOpenHouse.Appointments, "a2")
	posWithout := indexOf(t, withoutOpenHouse.Appointments, "a2")
	if posWith > posWithout {
		t.Fatalf("open house moved later with the bonus enabled: %d > %d", posWith, posWithout)
	}
	if withOpenHouse.Appointments[0].ID != "a2" {
		t.Fatalf("expected open house first, got %s", withOpenHouse.Appointments[0].ID)
	}
}

// Three stops on one day: B is an open house, C sits in a distant city. The
// open-house bonus must outweigh C's slightly better slot timing, and city
// clustering keeps A (same city as B) ahead of C.
func TestComputeRouteScenario(t *testing.T) {
	laLat, laLon := coords(34.0522, -118.2437)
	la2Lat, la2Lon := coords(34.0622, -118.2537)
	sfLat, sfLon := coords(37.7749, -122.4194)
	appts := []models.Appointment{
		testAppointment("A", "100 Alameda St", "LA", "09:00", 30, false, laLat, laLon),
		testAppointment("B", "200 Broadway", "LA", "10:00", 45, true, la2Lat, la2Lon),
		testAppointment("C", "300 Castro St", "SF", "09:30", 20, false, sfLat, sfLon),
	}

	route := ComputeRoute("09:00", appts, DefaultPriorities())

	posA := indexOf(t, route.Appointments, "A")
	posB := indexOf(t, route.Appointments, "B")
	posC := indexOf(t, route.Appointments, "C")
	if posB > posC {
		t.Fatalf("expected B before C, got order %v", orderIDs(route.Appointments))
	}
	if posA > posC {
		t.Fatalf("expected A before C, got order %v", orderIDs(route.Appointments))
	}
}

func TestComputeRouteTieBreakByStartTimeAndAddress(t *testing.T) {
	// Identical scores apart from start time, then apart from address.
	appts := []models.Appointment{
		testAppointment("late", "1 Same St", "LA", "10:00", 30, false, nil, nil),
		testAppointment("early", "2 Same St", "LA", "09:20", 30, false, nil, nil),
	}
	// appointment_time disabled so both candidates score identically.
	priorities := DefaultPriorities()
	priorities[1].Enabled = false

	route := ComputeRoute("09:00", appts, priorities)
	if route.Appointments[0].ID != "early" {
		t.Fatalf("expected earlier start_time to win the tie, got %s", route.Appointments[0].ID)
	}

	appts[0].StartTime = "09:20"
	route = ComputeRoute("09:00", appts, priorities)
	if route.Appointments[0].ID != "late" {
		t.Fatalf("expected lexicographic address tie-break, got %s", route.Appointments[0].ID)
	}
}

func indexOf(t *testing.T, appts []models.Appointment, id string) int {
	t.Helper()
	for i, a := range appts {
		if a.ID == id {
			return i
		}
	}
	t.Fatalf("appointment %s not in route", id)
	return -1
}

func orderIDs(appts []models.Appointment) []string {
	out := make([]string, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}
