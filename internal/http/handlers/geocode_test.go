package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/agentroute/backend/internal/geocode"
)

func newGeocodeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Geocoder:  geocode.MockGeocoder{},
		Validator: validator.New(),
		Logger:    zerolog.Nop(),
	}
	r := gin.New()
	r.GET("/api/geocode/search", h.GeocodeSearch)
	r.POST("/api/geocode/validate", h.GeocodeValidate)
	return r
}

func TestGeocodeSearchRequiresQuery(t *testing.T) {
	r := newGeocodeRouter()
	req, _ := http.NewRequest(http.MethodGet, "/api/geocode/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGeocodeSearchReturnsCandidates(t *testing.T) {
	r := newGeocodeRouter()
	req, _ := http.NewRequest(http.MethodGet, "/api/geocode/search?q=123+Main+St", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var candidates []geocode.Candidate
	if err := json.Unmarshal(w.Body.Bytes(), &candidates); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
}

func TestGeocodeValidate(t *testing.T) {
	r := newGeocodeRouter()
	body := `{"address":"123 Main St","city":"LA"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/geocode/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var v geocode.Validation
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !v.Valid || v.City != "LA" {
		t.Fatalf("unexpected validation: %+v", v)
	}
}

func TestGeocodeValidateRequiresAddress(t *testing.T) {
	r := newGeocodeRouter()
	req, _ := http.NewRequest(http.MethodPost, "/api/geocode/validate", strings.NewReader(`{"city":"LA"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
