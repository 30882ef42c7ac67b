// Package config loads service settings from defaults, an optional TOML file and
// environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
)

type Config struct {
	ProjectID string      `toml:"project_id"`
	Region    string      `toml:"region"`
	Port      string      `toml:"port"`
	Log       LogConfig   `toml:"log"`
	Grid      GridConfig  `toml:"grid"`
	Store     StoreConfig `toml:"store"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // "json" (Cloud Run) or "text"
}

type GridConfig struct {
	Columns int `toml:"columns"`
}

type StoreConfig struct {
	Backend       string `toml:"backend"`
	SQLitePath    string `toml:"sqlite_path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Port: "8080",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Grid: GridConfig{Columns: 4},
		Store: StoreConfig{
			Backend:       BackendFirestore,
			SQLitePath:    "dashboard.db",
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "dashboard",
		},
	}
}

// New reads the environment only. It is what the Cloud Run service uses.
func New() (*Config, error) {
	return Load("")
}

// LocalDefault is Default with an on-disk SQLite store, for tools run outside Cloud Run.
func LocalDefault() *Config {
	cfg := Default()
	cfg.Log.Format = "text"
	cfg.Store.Backend = BackendSQLite
	return cfg
}

// Load layers the TOML file at path (skipped when empty or missing) and the
// environment on top of the defaults, then validates the result.
func Load(path string) (*Config, error) {
	return LoadFrom(path, Default())
}

// LoadFrom is Load starting from cfg instead of the defaults.
func LoadFrom(path string, cfg *Config) (*Config, error) {
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", key, v)
		}
		*dst = n
		return nil
	}

	setString("PROJECTID", &cfg.ProjectID)
	setString("REGION", &cfg.Region)
	setString("PORT", &cfg.Port)
	setString("LOGLEVEL", &cfg.Log.Level)
	setString("LOGFORMAT", &cfg.Log.Format)
	setString("STOREBACKEND", &cfg.Store.Backend)
	setString("SQLITEPATH", &cfg.Store.SQLitePath)
	setString("REDISADDR", &cfg.Store.RedisAddr)
	setString("REDISPASSWORD", &cfg.Store.RedisPassword)
	setString("MONGOURI", &cfg.Store.MongoURI)
	setString("MONGODATABASE", &cfg.Store.MongoDatabase)

	if err := setInt("GRIDCOLUMNS", &cfg.Grid.Columns); err != nil {
		return err
	}
	return setInt("REDISDB", &cfg.Store.RedisDB)
}

// Validate checks the settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	// large widgets are two cells wide
	if c.Grid.Columns < 2 {
		return fmt.Errorf("grid.columns must be at least 2, got %d", c.Grid.Columns)
	}
	c.Store.Backend = strings.ToLower(c.Store.Backend)
	switch c.Store.Backend {
	case BackendFirestore:
		if c.ProjectID == "" {
			return errors.New("project_id is required for the firestore backend")
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path must be set")
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr must be set")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New("store.mongo_uri and store.mongo_database must be set")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
