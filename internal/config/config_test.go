package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Errorf("unexpected addr: %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.DevMode {
		t.Errorf("expected dev mode off by default")
	}
	if cfg.Content.Dir != "content/restaurants" {
		t.Errorf("unexpected content dir: %s", cfg.Content.Dir)
	}
	if cfg.Content.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected cache ttl: %s", cfg.Content.CacheTTL)
	}
	if cfg.Map.Center != [2]float64{35.056870, -89.692315} {
		t.Errorf("unexpected map center: %v", cfg.Map.Center)
	}
	if cfg.Map.Zoom != 12 {
		t.Errorf("unexpected map zoom: %d", cfg.Map.Zoom)
	}
	if cfg.Site.Title != defaultSiteTitle {
		t.Errorf("unexpected site title: %s", cfg.Site.Title)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                       "9000",
		"EATLOCAL_WEB_PORT":          "9090",
		"EATLOCAL_WEB_DEV":           "yes",
		"EATLOCAL_WEB_READ_TIMEOUT":  "20s",
		"EATLOCAL_CONTENT_DIR":       "/srv/content",
		"EATLOCAL_CONTENT_CACHE_TTL": "30s",
		"EATLOCAL_SITE_TITLE":        "Collierville Eats",
		"EATLOCAL_SITE_URL":          "https://eats.example.com/",
		"EATLOCAL_MAP_CENTER":        " 35.04 , -89.66 ",
		"EATLOCAL_MAP_ZOOM":          "14",
		"EATLOCAL_GA_MEASUREMENT_ID": "G-TEST",
		"LOG_LEVEL":                  "DEBUG",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected EATLOCAL_WEB_PORT to win, got %s", cfg.Server.Port)
	}
	if !cfg.Server.DevMode {
		t.Errorf("expected dev mode on")
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Content.Dir != "/srv/content" || cfg.Content.CacheTTL != 30*time.Second {
		t.Errorf("unexpected content config: %+v", cfg.Content)
	}
	if cfg.Site.URL != "https://eats.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.URL)
	}
	if cfg.Map.Center != [2]float64{35.04, -89.66} || cfg.Map.Zoom != 14 {
		t.Errorf("unexpected map config: %+v", cfg.Map)
	}
	if cfg.Analytics.GA4MeasurementID != "G-TEST" {
		t.Errorf("unexpected analytics id: %s", cfg.Analytics.GA4MeasurementID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected lowercased log level, got %s", cfg.Log.Level)
	}
}

func TestLoadFallsBackToPORT(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "7070"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected PORT fallback, got %s", cfg.Server.Port)
	}
}

func TestLoadValidationError(t *testing.T) {
	env := map[string]string{
		"EATLOCAL_MAP_CENTER":        "north,west",
		"EATLOCAL_MAP_ZOOM":          "25",
		"EATLOCAL_CONTENT_CACHE_TTL": "-1s",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := vErr.Fields()
	want := []string{"Map.Center", "Map.Zoom", "Content.CacheTTL"}
	if len(fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: expected %s, got %s", i, want[i], fields[i])
		}
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport EATLOCAL_SITE_TITLE=\"From Dotenv\"\nEATLOCAL_MAP_ZOOM=10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{"EATLOCAL_MAP_ZOOM": "11"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Title != "From Dotenv" {
		t.Errorf("unexpected title: %s", cfg.Site.Title)
	}
	if cfg.Map.Zoom != 11 {
		t.Errorf("expected env map to override dotenv, got %d", cfg.Map.Zoom)
	}
}

func TestLoadDotEnvExpandsQuotedEscapes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "EATLOCAL_SITE_DESCRIPTION=\"Local\\nrestaurants\"\nEATLOCAL_SITE_TITLE='Single Quoted'\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Description != "Local\nrestaurants" {
		t.Errorf("unexpected description: %q", cfg.Site.Description)
	}
	if cfg.Site.Title != "Single Quoted" {
		t.Errorf("unexpected title: %q", cfg.Site.Title)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.env")
	if _, err := Load(WithEnvFile(path), WithoutSystemEnv()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
}

func TestLoadMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("NOT_AN_ASSIGNMENT\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	if _, err := Load(WithEnvFile(path), WithoutSystemEnv()); err == nil {
		t.Fatalf("expected error for malformed .env")
	}
}
