package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records logged-out session tokens in Redis until their
// natural expiry. Sessions are otherwise stateless, so this is the only
// server-side revocation point. Redis being down fails open: the gate falls
// back to signature and expiry checks alone.
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist returns nil when no Redis address is configured.
func NewTokenDenylist(addr string) *TokenDenylist {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable at %s, logout revocation disabled: %v", addr, err)
		return nil
	}
	return &TokenDenylist{client: client}
}

// Revoke marks a token as logged out for the remainder of its lifetime.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) {
	if d == nil || ttl <= 0 {
		return
	}
	if err := d.client.Set(ctx, denyKey(token), "1", ttl).Err(); err != nil {
		log.Printf("Redis token revoke failed: %v", err)
	}
}

// IsRevoked reports whether a token was denylisted by a logout.
func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) bool {
	if d == nil {
		return false
	}
	n, err := d.client.Exists(ctx, denyKey(token)).Result()
	if err != nil {
		log.Printf("Redis denylist check failed: %v", err)
		return false
	}
	return n > 0
}

func denyKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "denylist:" + hex.EncodeToString(sum[:])
}
