package authgate

import (
	"errors"

	internalaudit "github.com/bobby-ops/authgate/internal/audit"
	"github.com/bobby-ops/authgate/internal/rate"
	"github.com/bobby-ops/authgate/jwt"
	"github.com/bobby-ops/authgate/revocation"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by authgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	credentials CredentialChecker
	auditSink   AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New returns a Builder preloaded with [DefaultConfig]; construction is
// allocation-only until [Builder.Build].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the Redis client backing the revocation blacklist and
// the issuance limiter. Required when the revocation backend is "redis".
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithCredentialChecker supplies the caller's credential verification
// collaborator. Required.
func (b *Builder) WithCredentialChecker(checker CredentialChecker) *Builder {
	b.credentials = checker
	return b
}

// WithAuditSink supplies the sink receiving engine audit events. Only
// consulted when [AuditConfig] is enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// A configuration failure here (missing signing key, unusable backend) is
// fatal by design and must abort startup.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.credentials == nil {
		return nil, errors.New("credential checker required")
	}
	if cfg.Revocation.Backend == "redis" && b.redis == nil {
		return nil, errors.New("redis revocation backend requires redis client")
	}

	codec, err := jwt.NewCodec(jwt.Config{
		SigningMethod: jwt.SigningMethod(cfg.JWT.SigningMethod),
		PrivateKey:    cloneBytes(cfg.JWT.PrivateKey),
		PublicKey:     cloneBytes(cfg.JWT.PublicKey),
		Issuer:        cfg.JWT.Issuer,
		Leeway:        cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	// -------- REVOCATION STORE --------
	var store revocation.Store
	switch cfg.Revocation.Backend {
	case "redis":
		store = revocation.NewRedisStore(b.redis, cfg.Revocation.RedisPrefix)
	default:
		store = revocation.NewMemoryStore(cfg.Revocation.SweepInterval)
	}

	// -------- ISSUANCE LIMITER --------
	var limiter rate.Limiter
	if cfg.Issuance.MinInterval > 0 {
		if b.redis != nil {
			limiter = rate.NewRedis(b.redis, cfg.Issuance.RedisPrefix, cfg.Issuance.MinInterval)
		} else {
			limiter = rate.NewMemory(cfg.Issuance.MinInterval)
		}
	}

	engine := &Engine{
		config:      cfg,
		codec:       codec,
		revocations: store,
		limiter:     limiter,
		routes:      newRouteTable(cfg.Routes),
		credentials: b.credentials,
		metrics:     NewMetrics(cfg.Metrics),
	}
	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	b.built = true

	return engine, nil
}
