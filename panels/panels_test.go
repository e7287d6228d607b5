package panels

import (
	"testing"

	"travel-map/model"
)

func TestLocationWithOverride(t *testing.T) {
	d := Location(model.Location{
		ID:       "warner_bros_movie_world",
		Name:     "華納兄弟電影世界",
		Category: model.CategoryThemePark,
		Address:  "Pacific Motorway, Oxenford QLD 4210",
	})

	if d.TicketPrice != "單日票約 A$109" {
		t.Errorf("ticket price = %q", d.TicketPrice)
	}
	if d.Website != "https://movieworld.com.au/" {
		t.Errorf("website = %q", d.Website)
	}
	if len(d.Highlights) != 4 || len(d.Tips) != 3 {
		t.Errorf("highlights=%d tips=%d", len(d.Highlights), len(d.Tips))
	}
	if d.Icon != "🎢" || d.CategoryLabel != "主題樂園" {
		t.Errorf("icon=%q label=%q", d.Icon, d.CategoryLabel)
	}
	if d.Address != "Pacific Motorway, Oxenford QLD 4210" {
		t.Errorf("address = %q", d.Address)
	}
}

func TestLocationOverrideIsNotShared(t *testing.T) {
	d := Location(model.Location{ID: "south_bank"})
	d.Highlights[0] = "changed"
	if Location(model.Location{ID: "south_bank"}).Highlights[0] == "changed" {
		t.Error("override table was mutated through a returned detail")
	}
}

func TestLocationPlaceholder(t *testing.T) {
	d := Location(model.Location{
		ID:          "eat_street",
		Category:    model.CategoryFood,
		Description: "貨櫃夜市",
		VisitDates:  []string{"2025-08-01"},
	})

	if d.OpeningHours != PlaceholderOpeningHours || d.TicketPrice != PlaceholderTicketPrice {
		t.Errorf("expected placeholders, got %q / %q", d.OpeningHours, d.TicketPrice)
	}
	if len(d.Highlights) != 1 || d.Highlights[0] != "貨櫃夜市" {
		t.Errorf("highlights = %v, want the description", d.Highlights)
	}
	if len(d.Tips) != 2 {
		t.Errorf("tips = %v", d.Tips)
	}
	if d.Website != "" {
		t.Errorf("website = %q, want empty", d.Website)
	}
	if len(d.VisitDates) != 1 {
		t.Errorf("visit dates = %v", d.VisitDates)
	}

	bare := Location(model.Location{ID: "unknown_place", Category: "museum"})
	if bare.Highlights[0] != PlaceholderHighlight {
		t.Errorf("highlight = %q", bare.Highlights[0])
	}
	if bare.CategoryLabel != "地點" || bare.Icon != "📍" {
		t.Errorf("label=%q icon=%q", bare.CategoryLabel, bare.Icon)
	}
}

func TestInfoFrom(t *testing.T) {
	if _, ok := InfoFrom(nil); ok {
		t.Error("expected no info panel without a document")
	}

	doc := &model.RouteDocument{
		EmergencyContacts: model.EmergencyContacts{Emergency: "000", Consulate: "駐布里斯本辦事處"},
		TravelTips:        model.TravelTips{DrivingRules: []string{"靠左行駛"}},
	}
	info, ok := InfoFrom(doc)
	if !ok {
		t.Fatal("expected info panel")
	}
	if info.EmergencyContacts.Emergency != "000" || info.TravelTips.DrivingRules[0] != "靠左行駛" {
		t.Errorf("info = %+v", info)
	}
}
