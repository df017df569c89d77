package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadReadsAllSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
log:
  level: debug
redis:
  addr: localhost:6379
  ttl: 5m
postgres:
  url: postgres://trivia@localhost/trivia
mongo:
  uri: mongodb://localhost:27017
  database: trivia
  collection: questions
questions:
  ttl: 1h
game:
  winningScore: 50
  roundTime: 15
  tickInterval: 500ms
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected server/log section: %+v %+v", cfg.Server, cfg.Log)
	}
	if cfg.Mongo.Database != "trivia" || cfg.Mongo.Collection != "questions" {
		t.Fatalf("unexpected mongo section: %+v", cfg.Mongo)
	}
	defaults := cfg.GameDefaults()
	if defaults.WinningScore != 50 || defaults.RoundTime != 15 {
		t.Fatalf("unexpected game defaults: %+v", defaults)
	}
	if d := TTLDuration(cfg.Game.TickInterval, time.Second); d != 500*time.Millisecond {
		t.Fatalf("unexpected tick interval %v", d)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if d := TTLDuration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for empty value, got %v", d)
	}
	if d := TTLDuration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for bad value, got %v", d)
	}
}
