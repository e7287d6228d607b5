package markers

import (
	"testing"

	"travel-map/mapsurface"
	"travel-map/model"
)

func TestIconAndColorTable(t *testing.T) {
	tests := []struct {
		category model.Category
		icon     string
		color    string
	}{
		{model.CategoryHotel, "🏨", "#4F46E5"},
		{model.CategoryAttraction, "🎨", "#10B981"},
		{model.CategoryEducation, "🎓", "#F59E0B"},
		{model.CategoryShopping, "🛍️", "#EF4444"},
		{model.CategoryThemePark, "🎢", "#8B5CF6"},
		{model.CategoryFood, "🍽️", "#F97316"},
		{model.CategoryActivity, "🚣", "#06B6D4"},
	}
	for _, tt := range tests {
		if got := IconFor(tt.category); got != tt.icon {
			t.Errorf("IconFor(%s) = %q, want %q", tt.category, got, tt.icon)
		}
		if got := ColorFor(tt.category); got != tt.color {
			t.Errorf("ColorFor(%s) = %q, want %q", tt.category, got, tt.color)
		}
	}
	if len(tests) != len(model.Categories) {
		t.Errorf("table covers %d categories, model has %d", len(tests), len(model.Categories))
	}
}

func TestUnknownCategoryFallsBack(t *testing.T) {
	for _, c := range []model.Category{"", "museum", "HOTEL"} {
		if IconFor(c) != DefaultIcon {
			t.Errorf("IconFor(%q) = %q, want default", c, IconFor(c))
		}
		if ColorFor(c) != DefaultColor {
			t.Errorf("ColorFor(%q) = %q, want default", c, ColorFor(c))
		}
	}
}

func sampleCatalog() *model.Catalog {
	return &model.Catalog{
		Hotels: []model.Location{
			{ID: "brisbane_hotel", Name: "Brisbane Hotel", Category: model.CategoryHotel, Coordinates: model.Point{Lat: -27.4698, Lng: 153.0251}},
			{ID: "gold_coast_hotel", Name: "Surfers Hotel", Category: model.CategoryHotel, Coordinates: model.Point{Lat: -28.0023, Lng: 153.4145}},
		},
		BrisbaneAttractions: []model.Location{
			{ID: "south_bank", Name: "South Bank", Category: model.CategoryAttraction, Coordinates: model.Point{Lat: -27.4810, Lng: 153.0234}},
			{ID: "tafe_queensland", Name: "TAFE Queensland", Category: model.CategoryEducation, Coordinates: model.Point{Lat: -27.4800, Lng: 153.0190}},
		},
		GoldCoastAttractions: []model.Location{
			{ID: "warner_bros_movie_world", Name: "Movie World", Category: model.CategoryThemePark, Coordinates: model.Point{Lat: -27.9070, Lng: 153.3123}},
		},
	}
}

func TestDeriveOneMarkerPerLocation(t *testing.T) {
	got := Derive(sampleCatalog(), nil)
	if len(got) != 5 {
		t.Fatalf("markers = %d, want 5", len(got))
	}

	want := map[string]string{
		"brisbane_hotel":          "🏨",
		"gold_coast_hotel":        "🏨",
		"south_bank":              "🎨",
		"tafe_queensland":         "🎓",
		"warner_bros_movie_world": "🎢",
	}
	for _, m := range got {
		if m.Icon != want[m.ID] {
			t.Errorf("%s icon = %q, want %q", m.ID, m.Icon, want[m.ID])
		}
		delete(want, m.ID)
	}
	if len(want) != 0 {
		t.Errorf("missing markers for %v", want)
	}
}

func TestDeriveClickSelectsLocationWithCategory(t *testing.T) {
	var selected model.Location
	got := Derive(sampleCatalog(), func(loc model.Location) { selected = loc })

	for _, m := range got {
		if m.ID == "tafe_queensland" {
			m.OnClick()
		}
	}
	if selected.ID != "tafe_queensland" || selected.Category != model.CategoryEducation {
		t.Errorf("selected = %+v", selected)
	}
}

type recordingTarget struct {
	setCalls int
	fitCalls int
	markers  []mapsurface.Marker
}

func (r *recordingTarget) SetMarkers(m []mapsurface.Marker) {
	r.setCalls++
	r.markers = m
}

func (r *recordingTarget) FitBounds(locs []model.Location) bool {
	r.fitCalls++
	return len(locs) > 0
}

func TestSyncOnlyWhenCatalogChanges(t *testing.T) {
	target := &recordingTarget{}
	s := &Synchronizer{}
	catalog := sampleCatalog()

	if !s.Sync(target, catalog) {
		t.Fatal("expected first sync to rebuild")
	}
	if s.Sync(target, catalog) {
		t.Error("expected no rebuild for the same catalog")
	}
	if target.setCalls != 1 || target.fitCalls != 1 {
		t.Errorf("set=%d fit=%d, want 1 each", target.setCalls, target.fitCalls)
	}

	if !s.Sync(target, sampleCatalog()) {
		t.Error("expected rebuild for a new catalog")
	}
	if len(target.markers) != 5 {
		t.Errorf("markers = %d, want 5", len(target.markers))
	}
	if s.Sync(target, nil) {
		t.Error("nil catalog should not rebuild")
	}
}
