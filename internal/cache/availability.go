// Package cache keeps recent availability results in redis. Entries are
// scoped by a generation counter so one INCR invalidates all of them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

const defaultPrefix = "availability"

// NoGeneration is returned by Get when the generation could not be read.
// Set ignores it.
const NoGeneration int64 = -1

type AvailabilityCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// NewAvailabilityCache returns a cache that does nothing when rdb is nil.
func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityCache {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, prefix: defaultPrefix, log: log}
}

func (c *AvailabilityCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *AvailabilityCache) generationKey() string {
	return c.prefix + ":gen"
}

func entryKey(prefix string, gen int64, in domain.AvailabilityInput) string {
	return fmt.Sprintf(
		"%s:%d:%d:%d:%d",
		prefix,
		gen,
		in.PartySize,
		in.Window.Start.UTC().Unix(),
		in.Window.End.UTC().Unix(),
	)
}

func (c *AvailabilityCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get looks up the current generation and returns that generation along
// with the result. A miss is filled by passing the same generation to Set,
// so a result computed before an Invalidate lands under the old generation
// and is never served.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]models.Table, int64, bool) {
	if !c.enabled() {
		return nil, NoGeneration, false
	}

	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("availability cache generation read failed", zap.Error(err))
		return nil, NoGeneration, false
	}

	raw, err := c.rdb.Get(ctx, entryKey(c.prefix, gen, in)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, gen, false
	}

	var tables []models.Table
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, gen, false
	}
	return tables, gen, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	gen int64,
	in domain.AvailabilityInput,
	tables []models.Table,
) {
	if !c.enabled() || gen < 0 {
		return
	}

	raw, err := json.Marshal(tables)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, entryKey(c.prefix, gen, in), raw, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache write failed", zap.Error(err))
	}
}

// Invalidate moves every reader to a fresh generation. Old entries expire
// through their TTL.
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, c.generationKey()).Err(); err != nil {
		c.log.Warn("availability cache invalidation failed", zap.Error(err))
	}
}

// NewRedisClient returns nil when addr is empty.
func NewRedisClient(addr string, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
