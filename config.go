package authgate

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT        JWTConfig
	Revocation RevocationConfig
	Issuance   IssuanceConfig
	Routes     RouteConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by authgate APIs.
//
// JWTConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JWTConfig struct {
	TokenTTL      time.Duration
	SigningMethod string // "ed25519" (default), "hs256" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
	HeaderName    string // credential header, default "Authorization"
}

/*
====================================
REVOCATION CONFIG
====================================
*/

// RevocationConfig defines a public type used by authgate APIs.
//
// RevocationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RevocationConfig struct {
	Backend       string // "memory" (default) or "redis"
	RedisPrefix   string
	SweepInterval time.Duration
}

/*
====================================
ISSUANCE CONFIG
====================================
*/

// IssuanceConfig defines a public type used by authgate APIs.
//
// IssuanceConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type IssuanceConfig struct {
	MinInterval time.Duration // minimum gap between issuances for one subject
	RedisPrefix string
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig defines a public type used by authgate APIs.
//
// Public route patterns are exact paths ("/login") or prefix patterns with a
// trailing "/*" ("/swagger-ui/*"). RequiredRoles maps route patterns to the
// role set a principal must intersect; routes without an entry require
// DefaultRole.
type RouteConfig struct {
	PublicRoutes  []string
	RequiredRoles map[string][]string
	DefaultRole   string
}

// AuditConfig defines a public type used by authgate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by authgate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULTS
====================================
*/

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			TokenTTL:      2 * time.Hour,
			SigningMethod: "ed25519",
			Leeway:        30 * time.Second,
			HeaderName:    "Authorization",
		},
		Revocation: RevocationConfig{
			Backend:       "memory",
			RedisPrefix:   "arv",
			SweepInterval: time.Minute,
		},
		Issuance: IssuanceConfig{
			MinInterval: 3 * time.Second,
			RedisPrefix: "ais",
		},
		Routes: RouteConfig{
			// Logout is public at the filter level: its own handler decides
			// lenient-decode semantics, distinct from authentication.
			PublicRoutes: []string{"/login", "/logout", "/pwd/reset", "/swagger-ui/*", "/v3/api-docs/*"},
			DefaultRole:  "USER",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig returns the baseline configuration. Callers override fields
// and pass the result to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

/*
====================================
ENVIRONMENT
====================================
*/

type envConfig struct {
	TokenTTL            time.Duration `env:"AUTHGATE_TOKEN_TTL" envDefault:"2h"`
	SigningMethod       string        `env:"AUTHGATE_SIGNING_METHOD" envDefault:"ed25519"`
	PrivateKeyFile      string        `env:"AUTHGATE_PRIVATE_KEY_FILE"`
	PublicKeyFile       string        `env:"AUTHGATE_PUBLIC_KEY_FILE"`
	Issuer              string        `env:"AUTHGATE_ISSUER"`
	HeaderName          string        `env:"AUTHGATE_HEADER" envDefault:"Authorization"`
	RevocationBackend   string        `env:"AUTHGATE_REVOCATION_BACKEND" envDefault:"memory"`
	SweepInterval       time.Duration `env:"AUTHGATE_SWEEP_INTERVAL" envDefault:"1m"`
	IssuanceMinInterval time.Duration `env:"AUTHGATE_ISSUANCE_MIN_INTERVAL" envDefault:"3s"`
	PublicRoutes        []string      `env:"AUTHGATE_PUBLIC_ROUTES" envSeparator:","`
	DefaultRole         string        `env:"AUTHGATE_DEFAULT_ROLE" envDefault:"USER"`
	AuditEnabled        bool          `env:"AUTHGATE_AUDIT_ENABLED" envDefault:"false"`
	MetricsEnabled      bool          `env:"AUTHGATE_METRICS_ENABLED" envDefault:"true"`
}

// ConfigFromEnv builds a [Config] from AUTHGATE_* environment variables,
// layered over [DefaultConfig]. Key material is read from the files named by
// AUTHGATE_PRIVATE_KEY_FILE / AUTHGATE_PUBLIC_KEY_FILE; a missing or
// unreadable key file is a startup error, never a silent fallback.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	cfg.JWT.TokenTTL = ec.TokenTTL
	cfg.JWT.SigningMethod = ec.SigningMethod
	cfg.JWT.Issuer = ec.Issuer
	cfg.JWT.HeaderName = ec.HeaderName
	cfg.Revocation.Backend = ec.RevocationBackend
	cfg.Revocation.SweepInterval = ec.SweepInterval
	cfg.Issuance.MinInterval = ec.IssuanceMinInterval
	cfg.Routes.DefaultRole = ec.DefaultRole
	cfg.Audit.Enabled = ec.AuditEnabled
	cfg.Metrics.Enabled = ec.MetricsEnabled
	if len(ec.PublicRoutes) > 0 {
		cfg.Routes.PublicRoutes = ec.PublicRoutes
	}

	if ec.PrivateKeyFile != "" {
		key, err := os.ReadFile(ec.PrivateKeyFile)
		if err != nil {
			return Config{}, errors.New("cannot read private key file: " + err.Error())
		}
		cfg.JWT.PrivateKey = key
	}
	if ec.PublicKeyFile != "" {
		key, err := os.ReadFile(ec.PublicKeyFile)
		if err != nil {
			return Config{}, errors.New("cannot read public key file: " + err.Error())
		}
		cfg.JWT.PublicKey = key
	}

	return cfg, nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	out.Routes.PublicRoutes = append([]string(nil), cfg.Routes.PublicRoutes...)
	if cfg.Routes.RequiredRoles != nil {
		roles := make(map[string][]string, len(cfg.Routes.RequiredRoles))
		for pattern, set := range cfg.Routes.RequiredRoles {
			roles[pattern] = append([]string(nil), set...)
		}
		out.Routes.RequiredRoles = roles
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// A validation failure at startup is fatal by design: the engine never runs
// with a missing signing key or an unusable revocation backend.
func (c *Config) Validate() error {
	// JWT
	if c.JWT.TokenTTL <= 0 {
		return errors.New("JWT TokenTTL must be > 0")
	}

	if c.JWT.SigningMethod != "ed25519" && c.JWT.SigningMethod != "hs256" {
		return errors.New("unsupported JWT signing method")
	}

	if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PrivateKey) == 0 {
		return errors.New("ed25519 requires PrivateKey")
	}
	if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PublicKey) == 0 {
		return errors.New("ed25519 requires PublicKey")
	}
	if c.JWT.SigningMethod == "hs256" && len(c.JWT.PrivateKey) == 0 {
		return errors.New("hs256 requires PrivateKey")
	}

	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be between 0 and 2m")
	}
	if c.JWT.HeaderName == "" {
		return errors.New("JWT HeaderName must not be empty")
	}

	// Revocation
	if c.Revocation.Backend != "memory" && c.Revocation.Backend != "redis" {
		return errors.New("unsupported revocation backend")
	}
	if c.Revocation.Backend == "memory" && c.Revocation.SweepInterval <= 0 {
		return errors.New("Revocation SweepInterval must be > 0 for the memory backend")
	}

	// Issuance
	if c.Issuance.MinInterval < 0 {
		return errors.New("Issuance MinInterval must be >= 0")
	}

	// Routes
	if c.Routes.DefaultRole == "" {
		return errors.New("Routes DefaultRole must not be empty")
	}
	for pattern := range c.Routes.RequiredRoles {
		if pattern == "" {
			return errors.New("Routes RequiredRoles contains an empty pattern")
		}
		if len(c.Routes.RequiredRoles[pattern]) == 0 {
			return errors.New("Routes RequiredRoles contains an empty role set for " + pattern)
		}
	}
	for _, pattern := range c.Routes.PublicRoutes {
		if pattern == "" || pattern[0] != '/' {
			return errors.New("public route patterns must start with /")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when enabled")
	}

	return nil
}
