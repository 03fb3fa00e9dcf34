package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// NominatimGeocoder resolves addresses against a Nominatim instance.
// Requests are spaced by MinInterval to respect the public usage policy.
type NominatimGeocoder struct {
	BaseURL     string
	UserAgent   string
	MinInterval time.Duration
	Client      *http.Client

	mu        sync.Mutex
	lastReqAt time.Time
}

type nominatimItem struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Importance  float64          `json:"importance"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
}

func (a nominatimAddress) locality() string {
	if a.City != "" {
		return a.City
	}
	if a.Town != "" {
		return a.Town
	}
	return a.Village
}

func (g *NominatimGeocoder) Search(ctx context.Context, query string) ([]Candidate, error) {
	items, err := g.fetch(ctx, query, 5)
	if err != nil {
		return nil, err
	}
	return parseNominatimItems(items)
}

func (g *NominatimGeocoder) Validate(ctx context.Context, address, city string) (Validation, error) {
	items, err := g.fetch(ctx, BuildQuery(address, city), 1)
	if err != nil {
		return Validation{}, err
	}
	candidates, err := parseNominatimItems(items)
	if errors.Is(err, ErrNotFound) {
		return Validation{Valid: false}, nil
	}
	if err != nil {
		return Validation{}, err
	}
	best := candidates[0]
	resolvedCity := best.City
	if resolvedCity == "" {
		resolvedCity = city
	}
	return Validation{
		Valid:     true,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		City:      resolvedCity,
	}, nil
}

func (g *NominatimGeocoder) fetch(ctx context.Context, query string, limit int) ([]nominatimItem, error) {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if g.BaseURL == "" {
		g.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if g.UserAgent == "" {
		g.UserAgent = "agentroute-backend"
	}
	if g.MinInterval <= 0 {
		g.MinInterval = time.Second
	}

	g.mu.Lock()
	sleepFor := time.Until(g.lastReqAt.Add(g.MinInterval))
	if sleepFor > 0 {
		g.mu.Unlock()
		time.Sleep(sleepFor)
		g.mu.Lock()
	}
	g.lastReqAt = time.Now()
	g.mu.Unlock()

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&addressdetails=1&limit=%d",
		g.BaseURL, url.QueryEscape(query), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nominatim http error: %s", resp.Status)
	}

	var items []nominatimItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func parseNominatimItems(items []nominatimItem) ([]Candidate, error) {
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		lat, err := strconv.ParseFloat(item.Lat, 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(item.Lon, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, Candidate{
			DisplayName: item.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			City:        item.Address.locality(),
			Confidence:  item.Importance,
		})
	}
	return out, nil
}
