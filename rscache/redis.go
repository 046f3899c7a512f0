package rscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/config"
	"github.com/rssched/rollingstock-solver/objective"
	"github.com/rssched/rollingstock-solver/schedule"
)

const (
	keyPrefix = "rssched:objective:"
	// defaultTTL bounds staleness: an objective recomputed under a
	// different Objective (e.g. a reconfigured coefficient set) must not
	// be served back as if it still reflects the current one forever.
	defaultTTL = 10 * time.Minute
)

// NewClient creates a Redis client with connection pooling, verifying
// connectivity before returning.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("rscache: ping failed: %w", err)
	}
	return client, nil
}

// HealthCheck pings client and returns nil if healthy.
func HealthCheck(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx).Err()
}

// Cache is a Redis-backed scheduleHash -> ObjectiveValue cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps an already-connected Redis client as a Cache using the
// default TTL.
func New(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// Get returns the previously cached ObjectiveValue for hash, and whether
// it was found. Any Redis error (miss, timeout, connection failure) is
// reported as a plain miss.
func (c *Cache) Get(ctx context.Context, hash string) (*objective.ObjectiveValue, bool) {
	data, err := c.client.Get(ctx, keyPrefix+hash).Result()
	if err != nil {
		return nil, false
	}
	var levels []float64
	if err := json.Unmarshal([]byte(data), &levels); err != nil {
		return nil, false
	}
	return objective.ObjectiveValueFromFloats(levels), true
}

// Set stores value for hash, fire-and-forget: a write failure is not
// reported to the caller, matching the teacher's cache-write pattern of
// never letting a cache outage block the computation it is memoizing.
func (c *Cache) Set(ctx context.Context, hash string, value *objective.ObjectiveValue) {
	levels := make([]float64, value.NumLevels())
	for i := range levels {
		levels[i] = value.Level(i).Float64()
	}
	data, err := json.Marshal(levels)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, keyPrefix+hash, data, c.ttl).Err()
}

// HashSchedule builds a deterministic identity string for a schedule:
// every vehicle's (including dummy tours') id and the ordered node
// sequence of its tour. Two schedules with the same hash are structurally
// identical, so their objective values are interchangeable regardless of
// which worker computed them first.
func HashSchedule(s *schedule.Schedule) string {
	h := sha256.New()
	for _, id := range s.VehiclesIter() {
		writeTourSignature(h, s, id)
	}
	for _, id := range s.DummyIter() {
		writeTourSignature(h, s, id)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeTourSignature(h io.Writer, s *schedule.Schedule, id basetypes.VehicleID) {
	fmt.Fprintf(h, "%s:", id.String())
	t, ok := s.TourOf(id)
	if !ok {
		return
	}
	var b strings.Builder
	for _, n := range t.AllNodesIter() {
		b.WriteString(n.String())
		b.WriteByte(',')
	}
	fmt.Fprint(h, b.String())
	fmt.Fprint(h, "|")
}
