package geocode

import "testing"

func TestParseNominatimItems(t *testing.T) {
	items := []nominatimItem{
		{
			Lat:         "34.0522",
			Lon:         "-118.2437",
			DisplayName: "Los Angeles, California",
			Importance:  0.72,
			Address:     nominatimAddress{City: "Los Angeles"},
		},
	}
	candidates, err := parseNominatimItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Latitude != 34.0522 || c.Longitude != -118.2437 {
		t.Fatalf("unexpected coordinates: %+v", c)
	}
	if c.City != "Los Angeles" || c.Confidence != 0.72 {
		t.Fatalf("unexpected candidate: %+v", c)
	}
}

func TestParseNominatimItemsEmpty(t *testing.T) {
	if _, err := parseNominatimItems(nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNominatimAddressLocality(t *testing.T) {
	if got := (nominatimAddress{Town: "Pasadena"}).locality(); got != "Pasadena" {
		t.Fatalf("expected town fallback, got %s", got)
	}
	if got := (nominatimAddress{City: "LA", Town: "x"}).locality(); got != "LA" {
		t.Fatalf("expected city to win, got %s", got)
	}
}
