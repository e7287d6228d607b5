package store

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"travel-map/model"
)

const catalogJSON = `{
  "hotels": [
    {"id": "brisbane_hotel", "name": "布里斯本市區酒店", "coordinates": {"lat": -27.4698, "lng": 153.0251}, "dates": ["2025-07-26"]}
  ],
  "brisbane_attractions": [
    {"id": "south_bank", "name": "南岸公園", "type": "attraction", "coordinates": {"lat": -27.4810, "lng": 153.0234}},
    {"id": "eat_street", "name": "Eat Street 夜市", "type": "night_market", "coordinates": {"lat": -27.4425, "lng": 153.0718}}
  ],
  "gold_coast_attractions": [],
  "daily_itinerary": [
    {"day": 1, "date": "2025-07-26", "city": "台灣 → 布里斯本", "title": "出發", "activities": ["搭機"]},
    {"day": 2, "date": "2025-07-27", "city": "布里斯本", "title": "城市探索", "hotel": "brisbane_hotel", "locations": ["south_bank", "kangaroo_point_cliffs"]}
  ]
}`

const routesJSON = `{
  "route_brisbane_to_gold_coast": {
    "origin": "Brisbane CBD, QLD",
    "destination": {"address": "Surfers Paradise, QLD", "lat": -28.0023, "lng": 153.4145},
    "distance": "約 78 公里",
    "duration": "約 1 小時"
  },
  "travel_tips": {"driving_rules": ["靠左行駛"], "parking_notes": [], "public_transport": []},
  "emergency_contacts": {"emergency": "000"}
}`

type mapSource map[string]string

func (m mapSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	body, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestDecodeCatalog(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(catalogJSON))
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}

	hotel, ok := c.Hotel("brisbane_hotel")
	if !ok {
		t.Fatal("hotel not indexed")
	}
	if hotel.Category != model.CategoryHotel {
		t.Errorf("hotel category = %q, want hotel", hotel.Category)
	}

	market, ok := c.Location("eat_street")
	if !ok {
		t.Fatal("eat_street not indexed")
	}
	if market.Category != "night_market" {
		t.Errorf("unknown category should be kept as-is, got %q", market.Category)
	}

	if d, ok := c.Day(2); !ok || d.Hotel != "brisbane_hotel" {
		t.Errorf("day 2 = %+v, %v", d, ok)
	}
}

func TestDecodeCatalogRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty id", `{"hotels": [{"id": "", "name": "x", "coordinates": {"lat": -27, "lng": 153}}]}`},
		{"empty name", `{"hotels": [{"id": "h", "name": "", "coordinates": {"lat": -27, "lng": 153}}]}`},
		{"latitude out of range", `{"hotels": [{"id": "h", "name": "x", "coordinates": {"lat": -127, "lng": 153}}]}`},
		{"longitude out of range", `{"hotels": [{"id": "h", "name": "x", "coordinates": {"lat": -27, "lng": 253}}]}`},
		{"duplicate id", `{"hotels": [
			{"id": "h", "name": "x", "coordinates": {"lat": -27, "lng": 153}},
			{"id": "h", "name": "y", "coordinates": {"lat": -27, "lng": 153}}]}`},
		{"duplicate day", `{"daily_itinerary": [
			{"day": 1, "date": "d", "title": "t"},
			{"day": 1, "date": "d", "title": "t"}]}`},
		{"gap in days", `{"daily_itinerary": [
			{"day": 1, "date": "d", "title": "t"},
			{"day": 3, "date": "d", "title": "t"}]}`},
		{"missing title", `{"daily_itinerary": [{"day": 1, "date": "d"}]}`},
		{"missing coordinates", `{"hotels": [{"id": "h", "name": "x"}]}`},
		{"zero coordinates", `{"hotels": [{"id": "h", "name": "x", "coordinates": {"lat": 0, "lng": 0}}]}`},
		{"malformed json", `{"hotels": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCatalog(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeCatalogAcceptsZeroLatitudeOrLongitude(t *testing.T) {
	doc := `{
  "hotels": [{"id": "greenwich", "name": "Greenwich", "coordinates": {"lat": 51.4779, "lng": 0}}],
  "brisbane_attractions": [{"id": "quito", "name": "Quito", "type": "attraction", "coordinates": {"lat": 0, "lng": -78.4678}}],
  "daily_itinerary": [{"day": 1, "date": "d", "title": "t", "hotel": "greenwich", "locations": ["quito"]}]
}`
	c, err := DecodeCatalog(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}
	if loc, ok := c.Location("greenwich"); !ok || loc.Coordinates.Lng != 0 {
		t.Errorf("greenwich = %+v, %v", loc, ok)
	}
	if loc, ok := c.Location("quito"); !ok || loc.Coordinates.Lat != 0 {
		t.Errorf("quito = %+v, %v", loc, ok)
	}
}

func TestNewIndexesCatalog(t *testing.T) {
	c := &model.Catalog{
		Hotels:         []model.Location{{ID: "h", Name: "Hotel", Coordinates: model.Point{Lat: -27, Lng: 153}}},
		DailyItinerary: []model.Day{{Day: 1, Date: "d", Title: "t", Hotel: "h"}},
	}
	st := New(c, nil)
	got, err := st.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if _, ok := got.Location("h"); !ok {
		t.Error("h not indexed by New")
	}
	if _, ok := got.Day(1); !ok {
		t.Error("day 1 not indexed by New")
	}
}

func TestDecodeRoutesAcceptsStringAndObjectWaypoints(t *testing.T) {
	doc, err := DecodeRoutes(strings.NewReader(routesJSON))
	if err != nil {
		t.Fatalf("DecodeRoutes: %v", err)
	}
	r, ok := doc.Route(model.RouteBrisbaneToGoldCoast)
	if !ok {
		t.Fatal("route missing")
	}
	if r.Origin.Address != "Brisbane CBD, QLD" {
		t.Errorf("origin = %+v", r.Origin)
	}
	if p, ok := r.Destination.Point(); !ok || p.Lat != -28.0023 {
		t.Errorf("destination = %+v", r.Destination)
	}
	if _, ok := doc.Route(model.RouteBrisbaneToMovieWorld); ok {
		t.Error("absent route reported present")
	}
}

func TestLoadIsIndependentPerDocument(t *testing.T) {
	s := Load(context.Background(), mapSource{RoutesFile: routesJSON})

	if _, err := s.Catalog(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Catalog() err = %v, want ErrNotLoaded", err)
	}
	doc, err := s.Routes()
	if err != nil {
		t.Fatalf("Routes() err = %v", err)
	}
	if doc.EmergencyContacts.Emergency != "000" {
		t.Errorf("emergency = %q", doc.EmergencyContacts.Emergency)
	}

	s = Load(context.Background(), mapSource{CatalogFile: catalogJSON, RoutesFile: "not json"})
	if _, err := s.Catalog(); err != nil {
		t.Errorf("Catalog() err = %v", err)
	}
	if _, err := s.Routes(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Routes() err = %v, want ErrNotLoaded", err)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), []byte(catalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, RoutesFile), []byte(routesJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(context.Background(), DirSource{Dir: dir})
	c, err := s.Catalog()
	if err != nil {
		t.Fatalf("Catalog() err = %v", err)
	}
	if len(c.Locations()) != 3 {
		t.Errorf("locations = %d, want 3", len(c.Locations()))
	}
	if _, err := s.Routes(); err != nil {
		t.Errorf("Routes() err = %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/" + CatalogFile:
			io.WriteString(w, catalogJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := Load(context.Background(), HTTPSource{BaseURL: srv.URL + "/data/"})
	if _, err := s.Catalog(); err != nil {
		t.Errorf("Catalog() err = %v", err)
	}
	if _, err := s.Routes(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Routes() err = %v, want ErrNotLoaded", err)
	}
}

func TestCheckReferences(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(catalogJSON))
	if err != nil {
		t.Fatal(err)
	}
	c.DailyItinerary[0].Hotel = "missing_hotel"

	refs := CheckReferences(c)
	if len(refs) != 2 {
		t.Fatalf("refs = %v, want 2", refs)
	}
	if refs[0].Day != 1 || refs[0].Field != "hotel" || refs[0].ID != "missing_hotel" {
		t.Errorf("refs[0] = %+v", refs[0])
	}
	if refs[1].Day != 2 || refs[1].Field != "locations" || refs[1].ID != "kangaroo_point_cliffs" {
		t.Errorf("refs[1] = %+v", refs[1])
	}
}
