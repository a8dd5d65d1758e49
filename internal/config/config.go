package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	JWTSecret      string        `yaml:"jwt_secret"`
	APITimeout     time.Duration `yaml:"timeout"`
	DatabasePath   string        `yaml:"database_path"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Cache          CacheConfig   `yaml:"cache"`
}

// CacheConfig carries the residency policy for the read cache. Listing
// entries honor both deadlines, whichever trips first; statistics
// entries use only the absolute one.
type CacheConfig struct {
	ListingTTL     time.Duration `yaml:"listing_ttl"`
	ListingSliding time.Duration `yaml:"listing_sliding"`
	StatisticsTTL  time.Duration `yaml:"statistics_ttl"`
}

func LoadConfig(path string) (*Config, error) {
	// A missing .env file is fine; env vars may come from the process.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:           getEnv("SKILLSNAP_ADDR", ":8080"),
		JWTSecret:      getEnv("SKILLSNAP_JWT_SECRET", "supersecretkey"),
		APITimeout:     15 * time.Second,
		DatabasePath:   getEnv("SKILLSNAP_DATABASE_PATH", "skillsnap.db"),
		TokenDuration:  24 * time.Hour,
		AllowedOrigins: []string{"*"},
		Cache: CacheConfig{
			ListingTTL:     30 * time.Minute,
			ListingSliding: 10 * time.Minute,
			StatisticsTTL:  15 * time.Minute,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
