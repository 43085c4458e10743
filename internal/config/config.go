package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Storage         string
	DatabaseURL     string
	Migrations      bool
	HTTPAddr        string
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	CORSOrigins     []string
	DiscordToken    string
	DiscordGuildID  string
	DefaultLocale   string
	LogLevel        string
	TestingEnabled  bool
	ProjectorFanout int
}

// DiscordEnabled reports whether the Discord adapter should start.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

// Load reads an optional env file, then the process environment, and validates
// the result. envFile may be empty to use ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", envFile, err)
	}

	cfg := &Config{
		Storage:         strings.ToLower(strings.TrimSpace(getenv("STORAGE", StoragePostgres))),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:        strings.TrimSpace(getenv("HTTP_ADDR", ":8080")),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTIssuer:       strings.TrimSpace(os.Getenv("JWT_ISSUER")),
		JWTAudience:     strings.TrimSpace(os.Getenv("JWT_AUDIENCE")),
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "*")),
		DiscordToken:    strings.TrimSpace(os.Getenv("DISCORD_TOKEN")),
		DiscordGuildID:  strings.TrimSpace(os.Getenv("DISCORD_GUILD_ID")),
		DefaultLocale:   strings.TrimSpace(getenv("DEFAULT_LOCALE", "en")),
		LogLevel:        strings.TrimSpace(getenv("LOG_LEVEL", "info")),
		ProjectorFanout: 8,
	}

	var err error
	if cfg.Migrations, err = parseBool("MIGRATIONS", true); err != nil {
		return nil, err
	}
	if cfg.TestingEnabled, err = parseBool("TESTING_ENABLED", false); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(os.Getenv("PROJECTOR_FANOUT")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, fmt.Errorf("config: PROJECTOR_FANOUT invalid (%q): %w", raw, convErr)
		}
		cfg.ProjectorFanout = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies every rule on a loaded (or flag-overridden) configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("config: JWT_SECRET must be at least 32 bytes")
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			// Local default when DATABASE_URL is not provided.
			c.DatabaseURL = "postgres://localhost:5432/openconference?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}

	if c.HTTPAddr == "" {
		return fmt.Errorf("config: HTTP_ADDR cannot be empty")
	}

	for _, r := range c.DiscordGuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_GUILD_ID must be a Discord snowflake (digits only)")
		}
	}

	if c.ProjectorFanout < 1 {
		return fmt.Errorf("config: PROJECTOR_FANOUT must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s invalid (%q): %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
