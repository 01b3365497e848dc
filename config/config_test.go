package config

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
	if cfg.Addr() != ":3000" || cfg.SlotKey != "todos" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"PORT":          "8081",
		"TODO_STORAGE":  "Redis",
		"REDIS_URL":     "redis://localhost:6379/0",
		"TODO_SLOT_KEY": "work",
		"DEBUG":         "true",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Port: 8081, Storage: StorageRedis, DBPath: "./todos.db", RedisURL: "redis://localhost:6379/0", SlotKey: "work", Debug: true}
	if cfg != want {
		t.Fatalf("got %#v, want %#v", cfg, want)
	}
}

func TestEnvErrors(t *testing.T) {
	for _, env := range []map[string]string{{"PORT": "http"}, {"DEBUG": "sometimes"}} {
		if _, err := fromLookup(lookupFrom(env)); err == nil {
			t.Fatalf("expected error for %v", env)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		ok   bool
	}{
		{"memory", func(c *Config) { c.Storage = StorageMemory }, true},
		{"port zero", func(c *Config) { c.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Port = 70000 }, false},
		{"redis without url", func(c *Config) { c.Storage = StorageRedis }, false},
		{"unknown storage", func(c *Config) { c.Storage = "s3" }, false},
		{"empty slot", func(c *Config) { c.SlotKey = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestOpenSlot(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	configs := []Config{
		{Storage: StorageMemory},
		{Storage: StorageSQLite, DBPath: filepath.Join(t.TempDir(), "todos.db")},
		{Storage: StorageRedis, RedisURL: "redis://" + mr.Addr()},
	}
	for _, cfg := range configs {
		slot, err := OpenSlot(ctx, cfg)
		if err != nil {
			t.Fatalf("%s: %v", cfg.Storage, err)
		}
		if err := slot.Set(ctx, "todos", []byte("[]")); err != nil {
			t.Fatalf("%s set: %v", cfg.Storage, err)
		}
		_ = slot.Close()
	}

	if _, err := OpenSlot(ctx, Config{Storage: "s3"}); err == nil {
		t.Fatal("expected error for unknown storage")
	}
	if _, err := OpenSlot(ctx, Config{Storage: StorageRedis, RedisURL: "::"}); err == nil {
		t.Fatal("expected error for bad redis url")
	}
}
