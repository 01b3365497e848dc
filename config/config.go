// Package config resolves server settings from defaults and the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"todo-web/storage"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds the server settings.
type Config struct {
	Port     int
	Storage  string
	DBPath   string
	RedisURL string
	SlotKey  string
	Debug    bool
}

func Default() Config {
	return Config{
		Port:    3000,
		Storage: StorageSQLite,
		DBPath:  "./todos.db",
		SlotKey: storage.DefaultKey,
	}
}

// FromEnv starts from Default and applies PORT, TODO_STORAGE, TODO_DB_PATH,
// REDIS_URL, TODO_SLOT_KEY and DEBUG.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("PORT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = n
	}
	if v, ok := lookup("TODO_STORAGE"); ok && v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v, ok := lookup("TODO_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup("REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := lookup("TODO_SLOT_KEY"); ok && v != "" {
		cfg.SlotKey = v
	}
	if v, ok := lookup("DEBUG"); ok && v != "" {
		dbg, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid DEBUG: %w", err)
		}
		cfg.Debug = dbg
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("sqlite storage needs a database path")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis storage needs a redis url")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.SlotKey == "" {
		return fmt.Errorf("slot key is empty")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// OpenSlot builds the storage backend selected by c.Storage.
func OpenSlot(ctx context.Context, c Config) (storage.Slot, error) {
	switch c.Storage {
	case StorageSQLite:
		return storage.NewSQLiteSlot(c.DBPath)
	case StorageRedis:
		return storage.DialRedis(ctx, c.RedisURL)
	case StorageMemory:
		return storage.NewMemorySlot(), nil
	}
	return nil, fmt.Errorf("unknown storage %q", c.Storage)
}
