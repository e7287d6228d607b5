package utils

import (
	"testing"

	"travel-map/model"
)

func TestBoundsOfEmpty(t *testing.T) {
	if _, ok := BoundsOf(); ok {
		t.Fatal("expected no bounds for empty input")
	}
}

func TestBoundsOfContainsEveryInput(t *testing.T) {
	points := []model.Point{
		{Lat: -27.4698, Lng: 153.0251},
		{Lat: -28.0023, Lng: 153.4145},
		{Lat: -27.5336, Lng: 152.9689},
		{Lat: -27.9070, Lng: 153.3123},
	}

	b, ok := BoundsOf(points...)
	if !ok {
		t.Fatal("expected bounds")
	}
	for _, p := range points {
		if !b.Contains(p) {
			t.Errorf("bounds %+v does not contain %+v", b, p)
		}
	}

	// 最小性: 每条边都至少贴着一个输入点
	if b.South != -28.0023 || b.North != -27.4698 {
		t.Errorf("unexpected latitude span: %+v", b)
	}
	if b.West != 152.9689 || b.East != 153.4145 {
		t.Errorf("unexpected longitude span: %+v", b)
	}
}

func TestBoundsSinglePoint(t *testing.T) {
	p := model.Point{Lat: -27.4810, Lng: 153.0234}
	b, _ := BoundsOf(p)
	if b.Center() != p {
		t.Errorf("center %+v, want %+v", b.Center(), p)
	}
	if z := ZoomFor(b, 1024, 768); z != MaxZoom {
		t.Errorf("zoom for a single point = %d, want %d", z, MaxZoom)
	}
}

func TestZoomForShrinksWithSpan(t *testing.T) {
	city, _ := BoundsOf(model.Point{Lat: -27.46, Lng: 153.02}, model.Point{Lat: -27.49, Lng: 153.05})
	region, _ := BoundsOf(model.Point{Lat: -27.46, Lng: 152.96}, model.Point{Lat: -28.09, Lng: 153.45})

	if ZoomFor(city, 1024, 768) <= ZoomFor(region, 1024, 768) {
		t.Errorf("expected a city to need a closer zoom than the whole region")
	}
}

func TestHaversineDistance(t *testing.T) {
	brisbane := model.Point{Lat: -27.4698, Lng: 153.0251}
	surfers := model.Point{Lat: -28.0023, Lng: 153.4145}

	d := HaversineDistance(brisbane, surfers)
	// 直线距离约 70 公里
	if d < 65000 || d > 75000 {
		t.Errorf("distance = %.0f m, want about 70 km", d)
	}
	if HaversineDistance(brisbane, brisbane) != 0 {
		t.Error("distance to self should be 0")
	}
}
