package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"taskpad/internal/cache"
	"taskpad/internal/model"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 5 * time.Minute
)

// SessionCache is a read-through cache mapping a raw token to its resolved
// user. It only accelerates the middleware lookup; the auth_tokens table
// stays authoritative, so a cache outage degrades to database reads.
type SessionCache struct {
	cache *cache.Client
}

// NewSessionCache creates a session cache on top of the shared Redis client.
func NewSessionCache(c *cache.Client) *SessionCache {
	return &SessionCache{cache: c}
}

// sessionKey hashes the token to bound the key size.
func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached user for a token, or nil on miss.
func (s *SessionCache) Get(ctx context.Context, token string) *model.User {
	data, _ := s.cache.Get(ctx, sessionKey(token))
	if data == nil {
		return nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// Set caches the resolved user for a token.
func (s *SessionCache) Set(ctx context.Context, token string, user *model.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, sessionKey(token), payload, sessionTTL)
}

// Delete drops a token's cache entry. Called on logout so revocation takes
// effect immediately rather than after the TTL.
func (s *SessionCache) Delete(ctx context.Context, token string) {
	_ = s.cache.Delete(ctx, sessionKey(token))
}
