package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Data.Dir != "data" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Directions.Route != "route_brisbane_to_gold_coast" {
		t.Errorf("route = %q", cfg.Directions.Route)
	}
	if cfg.UseGoogle() {
		t.Error("auto provider without a key should use the road network")
	}
	ttl, err := cfg.SessionTTL()
	if err != nil || ttl != 24*time.Hour {
		t.Errorf("ttl = %v, %v", ttl, err)
	}
	if cfg.Session.MaxSessions != 1000 || cfg.Session.CreateRate != 1 || cfg.Session.CreateBurst != 10 {
		t.Errorf("session = %+v", cfg.Session)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
port = 9090

[map]
api_key = "from-file"

[directions]
route = "brisbane_to_movie_world"

[database]
enabled = true
host = "db.internal"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOGLE_MAPS_API_KEY", "from-env")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "trips")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Map.APIKey != "from-env" {
		t.Errorf("api key = %q, want env override", cfg.Map.APIKey)
	}
	if !cfg.UseGoogle() {
		t.Error("auto provider with a key should use google")
	}
	if cfg.Directions.Route != "brisbane_to_movie_world" {
		t.Errorf("route = %q", cfg.Directions.Route)
	}

	dbc := cfg.DB()
	if dbc.Host != "db.internal" || dbc.Name != "trips" || dbc.Port != "5432" {
		t.Errorf("db = %+v", dbc)
	}
	if !cfg.Database.Enabled {
		t.Error("database should be enabled")
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Directions.Provider = "bicycle"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown provider error")
	}

	cfg = Defaults()
	cfg.Directions.Provider = "google"
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing key error")
	}

	cfg = Defaults()
	cfg.Session.TTL = "forever"
	if err := cfg.Validate(); err == nil {
		t.Error("expected ttl error")
	}

	cfg = Defaults()
	cfg.Session.MaxSessions = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative session cap error")
	}

	cfg = Defaults()
	cfg.Directions.Provider = "graph"
	cfg.Map.APIKey = "key"
	if cfg.UseGoogle() {
		t.Error("graph provider should never use google")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
