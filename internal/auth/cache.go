package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/arzan03/TalentBridge/internal/config"
)

// TokenCache stores verified principals keyed by token digest.
type TokenCache interface {
	Get(ctx context.Context, key string) (*Principal, error)
	Set(ctx context.Context, key string, p *Principal, ttl time.Duration) error
}

// ErrCacheMiss is returned by TokenCache.Get when nothing is stored.
var ErrCacheMiss = errors.New("cache miss")

// CachedVerifier consults cache before delegating to next. Cache failures
// fall through to verification.
type CachedVerifier struct {
	next  Verifier
	cache TokenCache
	ttl   time.Duration
	now   func() time.Time
}

func NewCachedVerifier(next Verifier, cache TokenCache, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{next: next, cache: cache, ttl: ttl, now: time.Now}
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	key := tokenKey(token)

	p, err := v.cache.Get(ctx, key)
	if err == nil && (p.ExpiresAt.IsZero() || v.now().Before(p.ExpiresAt)) {
		return p, nil
	}
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		log.Warnw("Token cache read failed", "error", err)
	}

	p, err = v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	ttl := v.ttl
	if !p.ExpiresAt.IsZero() {
		if remaining := p.ExpiresAt.Sub(v.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl > 0 {
		if err := v.cache.Set(ctx, key, p, ttl); err != nil {
			log.Warnw("Token cache write failed", "error", err)
		}
	}
	return p, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RedisTokenCache keeps verified principals in Redis.
type RedisTokenCache struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenCache(ctx context.Context, cfg config.RedisConfig) (*RedisTokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisTokenCache{client: client, prefix: "auth:token:"}, nil
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (*Principal, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var p Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, key string, p *Principal, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *RedisTokenCache) Close() error {
	return c.client.Close()
}
