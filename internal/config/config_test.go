package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECORD_LIST_LIMIT", "oops")
	t.Setenv("DB_MAX_CONNS", "-3")
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load()
	if cfg.RecordListLimit != 500 {
		t.Errorf("expected default limit, got %d", cfg.RecordListLimit)
	}
	if cfg.DBMaxConns != 25 {
		t.Errorf("expected default max conns, got %d", cfg.DBMaxConns)
	}

	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("expected UTC, got %v err=%v", loc, err)
	}
}

func TestLocationInvalid(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus"}
	if _, err := cfg.Location(); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}

func TestUserID(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.UserID(); err == nil {
		t.Fatal("expected error for empty user id")
	}

	cfg.TUIUserID = "8c0a4a52-2a8e-4a47-9a38-4d1f5b3a6a11"
	id, err := cfg.UserID()
	if err != nil || id.String() != cfg.TUIUserID {
		t.Fatalf("unexpected id %v err=%v", id, err)
	}
}
