package authgate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.SigningMethod = "hs256"
	cfg.JWT.PrivateKey = []byte("test-secret")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.JWT.TokenTTL != 2*time.Hour {
		t.Fatalf("TokenTTL = %v, want 2h", cfg.JWT.TokenTTL)
	}
	if cfg.JWT.HeaderName != "Authorization" {
		t.Fatalf("HeaderName = %q, want Authorization", cfg.JWT.HeaderName)
	}
	if cfg.Revocation.Backend != "memory" {
		t.Fatalf("Backend = %q, want memory", cfg.Revocation.Backend)
	}
	if cfg.Issuance.MinInterval != 3*time.Second {
		t.Fatalf("MinInterval = %v, want 3s", cfg.Issuance.MinInterval)
	}
	if cfg.Routes.DefaultRole != "USER" {
		t.Fatalf("DefaultRole = %q, want USER", cfg.Routes.DefaultRole)
	}

	table := newRouteTable(cfg.Routes)
	for _, path := range []string{"/login", "/logout", "/pwd/reset", "/swagger-ui/index.html", "/v3/api-docs/config"} {
		if !table.IsPublic(path) {
			t.Fatalf("default public routes do not cover %q", path)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	valid := validTestConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero ttl", func(c *Config) { c.JWT.TokenTTL = 0 }},
		{"unknown method", func(c *Config) { c.JWT.SigningMethod = "rs256" }},
		{"hs256 without key", func(c *Config) { c.JWT.PrivateKey = nil }},
		{"ed25519 without keys", func(c *Config) { c.JWT.SigningMethod = "ed25519"; c.JWT.PrivateKey = nil }},
		{"excessive leeway", func(c *Config) { c.JWT.Leeway = time.Hour }},
		{"empty header", func(c *Config) { c.JWT.HeaderName = "" }},
		{"unknown backend", func(c *Config) { c.Revocation.Backend = "etcd" }},
		{"zero sweep interval", func(c *Config) { c.Revocation.SweepInterval = 0 }},
		{"negative min interval", func(c *Config) { c.Issuance.MinInterval = -time.Second }},
		{"empty default role", func(c *Config) { c.Routes.DefaultRole = "" }},
		{"empty role set", func(c *Config) { c.Routes.RequiredRoles = map[string][]string{"/admin": {}} }},
		{"relative public route", func(c *Config) { c.Routes.PublicRoutes = []string{"login"} }},
		{"audit without buffer", func(c *Config) { c.Audit.Enabled = true; c.Audit.BufferSize = 0 }},
	}
	for _, tc := range cases {
		cfg := validTestConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: Validate accepted invalid config", tc.name)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "hs256.key")
	if err := os.WriteFile(keyFile, []byte("env-secret"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv("AUTHGATE_TOKEN_TTL", "30m")
	t.Setenv("AUTHGATE_SIGNING_METHOD", "hs256")
	t.Setenv("AUTHGATE_PRIVATE_KEY_FILE", keyFile)
	t.Setenv("AUTHGATE_ISSUER", "gate-test")
	t.Setenv("AUTHGATE_REVOCATION_BACKEND", "redis")
	t.Setenv("AUTHGATE_ISSUANCE_MIN_INTERVAL", "5s")
	t.Setenv("AUTHGATE_PUBLIC_ROUTES", "/login,/health")
	t.Setenv("AUTHGATE_DEFAULT_ROLE", "MEMBER")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}

	if cfg.JWT.TokenTTL != 30*time.Minute {
		t.Fatalf("TokenTTL = %v, want 30m", cfg.JWT.TokenTTL)
	}
	if cfg.JWT.SigningMethod != "hs256" {
		t.Fatalf("SigningMethod = %q, want hs256", cfg.JWT.SigningMethod)
	}
	if string(cfg.JWT.PrivateKey) != "env-secret" {
		t.Fatalf("PrivateKey = %q, want env-secret", cfg.JWT.PrivateKey)
	}
	if cfg.JWT.Issuer != "gate-test" {
		t.Fatalf("Issuer = %q, want gate-test", cfg.JWT.Issuer)
	}
	if cfg.Revocation.Backend != "redis" {
		t.Fatalf("Backend = %q, want redis", cfg.Revocation.Backend)
	}
	if cfg.Issuance.MinInterval != 5*time.Second {
		t.Fatalf("MinInterval = %v, want 5s", cfg.Issuance.MinInterval)
	}
	if strings.Join(cfg.Routes.PublicRoutes, ",") != "/login,/health" {
		t.Fatalf("PublicRoutes = %v", cfg.Routes.PublicRoutes)
	}
	if cfg.Routes.DefaultRole != "MEMBER" {
		t.Fatalf("DefaultRole = %q, want MEMBER", cfg.Routes.DefaultRole)
	}
}

func TestConfigFromEnvMissingKeyFile(t *testing.T) {
	t.Setenv("AUTHGATE_PRIVATE_KEY_FILE", filepath.Join(t.TempDir(), "missing.key"))

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("ConfigFromEnv accepted an unreadable key file")
	}
}

func TestCloneConfigIsolation(t *testing.T) {
	cfg := validTestConfig()
	cfg.Routes.RequiredRoles = map[string][]string{"/admin/*": {"ADMIN"}}

	clone := cloneConfig(cfg)
	clone.JWT.PrivateKey[0] = 'X'
	clone.Routes.PublicRoutes[0] = "/changed"
	clone.Routes.RequiredRoles["/admin/*"][0] = "CHANGED"

	if cfg.JWT.PrivateKey[0] == 'X' {
		t.Fatal("clone shares key material with the source")
	}
	if cfg.Routes.PublicRoutes[0] == "/changed" {
		t.Fatal("clone shares public routes with the source")
	}
	if cfg.Routes.RequiredRoles["/admin/*"][0] == "CHANGED" {
		t.Fatal("clone shares role sets with the source")
	}
}
