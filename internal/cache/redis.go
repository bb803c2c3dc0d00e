package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProductListKey  = "products:list"
	LocationListKey = "locations:list"
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// call becomes a no-op, so the server runs fine without Redis.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Close discards the client. Subsequent cache calls become no-ops.
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// hashCredentials creates a hash of email+password for a cache key. The
// plaintext never reaches Redis.
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid, skipping the
// bcrypt comparison on repeat logins.
func GetCachedAuth(ctx context.Context, email, password string) (string, bool) {
	if client == nil {
		return "", false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes.
func CacheAuth(ctx context.Context, email, password, userID string) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user on password change or
// deactivation.
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys.
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateAuthPattern drops every cached credential entry. Used when a
// user is deactivated and the plaintext needed for the exact key is not
// available.
func InvalidateAuthPattern(ctx context.Context) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, "auth:*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// IsHealthy returns true if the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
