package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORAGE", "DATABASE_URL", "MIGRATIONS", "HTTP_ADDR", "JWT_SECRET", "JWT_ISSUER",
		"JWT_AUDIENCE", "CORS_ORIGINS", "DISCORD_TOKEN", "DISCORD_GUILD_ID", "DEFAULT_LOCALE",
		"LOG_LEVEL", "TESTING_ENABLED", "PROJECTOR_FANOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", validSecret)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != StoragePostgres || cfg.HTTPAddr != ":8080" || !cfg.Migrations {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DatabaseURL == "" {
		t.Fatalf("expected a local DATABASE_URL default")
	}
	if cfg.DiscordEnabled() {
		t.Fatalf("expected Discord disabled without a token")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "JWT_SECRET=" + validSecret + "\nSTORAGE=memory\nTESTING_ENABLED=true\nCORS_ORIGINS=http://a.test, http://b.test\nPROJECTOR_FANOUT=3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != StorageMemory || !cfg.TestingEnabled || cfg.ProjectorFanout != 3 {
		t.Fatalf("env file not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"bad storage", map[string]string{"JWT_SECRET": validSecret, "STORAGE": "redis"}},
		{"bad database url", map[string]string{"JWT_SECRET": validSecret, "DATABASE_URL": "nohost"}},
		{"bad bool", map[string]string{"JWT_SECRET": validSecret, "TESTING_ENABLED": "maybe"}},
		{"bad fanout", map[string]string{"JWT_SECRET": validSecret, "PROJECTOR_FANOUT": "0"}},
		{"bad guild", map[string]string{"JWT_SECRET": validSecret, "DISCORD_GUILD_ID": "guild"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(missingEnvFile(t)); err == nil {
				t.Fatalf("expected Load to fail")
			}
		})
	}
}
