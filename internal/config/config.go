package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// ErrMissingConfig is returned when a required environment variable is unset.
var ErrMissingConfig = errors.New("missing required configuration")

// DB holds the connection parameters for the grid store.
type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Simulator is the configuration for a single generation run.
type Simulator struct {
	DB         DB
	Start      time.Time
	End        time.Time
	Step       time.Duration
	Seed       int64
	FlushEvery int    // ticks per flush chunk, 0 buffers the whole run
	ParamsFile string // optional YAML tuning file
}

// API is the configuration for the dashboard API server.
type API struct {
	DB   DB
	Addr string
}

func loadDB(log *slog.Logger) (DB, error) {
	db := DB{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if db.Host == "" {
		db.Host = "localhost"
		log.Warn("using default", "key", "DB_HOST", "default", db.Host)
	}
	if db.Port == "" {
		db.Port = "5432"
		log.Warn("using default", "key", "DB_PORT", "default", db.Port)
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
		log.Warn("using default", "key", "DB_SSLMODE", "default", db.SSLMode)
	}
	for key, val := range map[string]string{
		"DB_USER":     db.User,
		"DB_PASSWORD": db.Password,
		"DB_NAME":     db.Name,
	} {
		if val == "" {
			return DB{}, fmt.Errorf("%w: %s", ErrMissingConfig, key)
		}
	}
	return db, nil
}

func getDuration(key string, def time.Duration, log *slog.Logger) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		log.Warn("using default", "key", key, "default", def.String())
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func getInt(key string, def int, log *slog.Logger) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// LoadSimulator reads and validates the simulator configuration from the
// environment. Validation happens here so a misconfigured run aborts before
// any store connection is attempted.
func LoadSimulator(log *slog.Logger) (Simulator, error) {
	db, err := loadDB(log)
	if err != nil {
		return Simulator{}, err
	}

	startRaw := os.Getenv("SIM_START")
	endRaw := os.Getenv("SIM_END")
	if startRaw == "" {
		return Simulator{}, fmt.Errorf("%w: SIM_START", ErrMissingConfig)
	}
	if endRaw == "" {
		return Simulator{}, fmt.Errorf("%w: SIM_END", ErrMissingConfig)
	}
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return Simulator{}, fmt.Errorf("invalid SIM_START %q: %w", startRaw, err)
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return Simulator{}, fmt.Errorf("invalid SIM_END %q: %w", endRaw, err)
	}
	if end.Before(start) {
		return Simulator{}, fmt.Errorf("SIM_END %s precedes SIM_START %s", endRaw, startRaw)
	}

	step, err := getDuration("SIM_STEP", 15*time.Minute, log)
	if err != nil {
		return Simulator{}, err
	}
	flushEvery, err := getInt("SIM_FLUSH_EVERY", 0, log)
	if err != nil {
		return Simulator{}, err
	}
	if flushEvery < 0 {
		return Simulator{}, fmt.Errorf("invalid SIM_FLUSH_EVERY: must be >= 0")
	}

	var seed int64
	if v := os.Getenv("SIM_SEED"); v != "" {
		seed, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Simulator{}, fmt.Errorf("invalid SIM_SEED %q: %w", v, err)
		}
	}

	return Simulator{
		DB:         db,
		Start:      start,
		End:        end,
		Step:       step,
		Seed:       seed,
		FlushEvery: flushEvery,
		ParamsFile: os.Getenv("SIM_PARAMS"),
	}, nil
}

// LoadAPI reads and validates the API server configuration.
func LoadAPI(log *slog.Logger) (API, error) {
	db, err := loadDB(log)
	if err != nil {
		return API{}, err
	}
	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
		log.Warn("using default", "key", "API_ADDR", "default", addr)
	}
	return API{DB: db, Addr: addr}, nil
}
