package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cooldown rate-limits outbound alerts per event type so one confirmed burst
// does not page the same contacts over and over.
type Cooldown interface {
	Allow(ctx context.Context, eventType string) bool
}

type database struct {
	client *redis.Client
	ttl    time.Duration
}

func newDatabase(ctx context.Context, address string, ttl time.Duration) (*database, error) {
	if len(address) == 0 {
		return nil, errors.New("no redis server provided")
	}

	redisOptions, err := redis.ParseURL(address)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(redisOptions)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info().Str("address", redisOptions.Addr).Msg("connected to redis")

	return &database{
		client: client,
		ttl:    ttl,
	}, nil
}

// Allow claims the cooldown slot for eventType. The claim is a SETNX with a
// TTL, so it expires on its own and survives process restarts. Redis errors
// fail open: a broken cooldown store must not silence alerts.
func (db *database) Allow(ctx context.Context, eventType string) bool {
	key := fmt.Sprintf("alerts:cooldown:%s", eventType)

	ok, err := db.client.SetNX(ctx, key, 1, db.ttl).Result()
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("cooldown check failed")
		return true
	}
	return ok
}

// memoryCooldown is the fallback when no redis server is configured.
type memoryCooldown struct {
	mu   sync.Mutex
	ttl  time.Duration
	last map[string]time.Time
}

func newMemoryCooldown(ttl time.Duration) *memoryCooldown {
	return &memoryCooldown{
		ttl:  ttl,
		last: make(map[string]time.Time),
	}
}

func (m *memoryCooldown) Allow(_ context.Context, eventType string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if t, ok := m.last[eventType]; ok && now.Sub(t) < m.ttl {
		return false
	}
	m.last[eventType] = now
	return true
}
