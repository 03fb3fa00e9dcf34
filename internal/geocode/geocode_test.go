package geocode

import (
	"context"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	if q := BuildQuery("123 Main St", "Los Angeles"); q != "123 Main St, Los Angeles" {
		t.Fatalf("unexpected query: %s", q)
	}
	if q := BuildQuery(" 123 Main St ", ""); q != "123 Main St" {
		t.Fatalf("unexpected query: %s", q)
	}
}

func TestMockGeocoderDeterministic(t *testing.T) {
	g := MockGeocoder{}
	first, err := g.Validate(context.Background(), "123 Main St", "LA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := g.Validate(context.Background(), "123 Main St", "LA")
	if first != second {
		t.Fatalf("expected identical validations, got %+v vs %+v", first, second)
	}
	if !first.Valid {
		t.Fatalf("expected valid result")
	}
}

func TestMockGeocoderEmptyAddress(t *testing.T) {
	g := MockGeocoder{}
	v, err := g.Validate(context.Background(), "   ", "LA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatalf("expected invalid result for blank address")
	}
	if _, err := g.Search(context.Background(), ""); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
