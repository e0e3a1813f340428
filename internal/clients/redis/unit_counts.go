package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lodestar-learning/lodestar-backend/internal/platform/envutil"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// UnitCountSource mirrors the chunk store's batched count lookup.
type UnitCountSource interface {
	CountByConceptNames(ctx context.Context, names []string) (map[string]int64, error)
}

// UnitCountCache is a read-through cache over the chunk store. Any redis
// failure degrades to a direct store read, logged once per call.
type UnitCountCache struct {
	log   *logger.Logger
	rdb   *goredis.Client
	inner UnitCountSource
	ttl   time.Duration
}

func NewUnitCountCache(log *logger.Logger, inner UnitCountSource) (*UnitCountCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if inner == nil {
		return nil, fmt.Errorf("inner unit count source required")
	}

	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := time.Duration(envutil.Int("REDIS_UNIT_COUNT_TTL_SECONDS", 300)) * time.Second

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &UnitCountCache{
		log:   log.With("client", "RedisUnitCountCache"),
		rdb:   rdb,
		inner: inner,
		ttl:   ttl,
	}, nil
}

func cacheKey(name string) string { return "chunk_units:" + name }

func (c *UnitCountCache) CountByConceptNames(ctx context.Context, names []string) (map[string]int64, error) {
	if c == nil || c.rdb == nil {
		return c.inner.CountByConceptNames(ctx, names)
	}
	if len(names) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = cacheKey(n)
	}

	out := make(map[string]int64, len(names))
	var missing []string
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Warn("redis mget failed, reading store directly", "error", err)
		return c.inner.CountByConceptNames(ctx, names)
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, names[i])
			continue
		}
		n, parseErr := strconv.ParseInt(s, 10, 64)
		if parseErr != nil {
			missing = append(missing, names[i])
			continue
		}
		if n > 0 {
			out[names[i]] = n
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.inner.CountByConceptNames(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.rdb.Pipeline()
	for _, name := range missing {
		n := fresh[name]
		if n > 0 {
			out[name] = n
		}
		pipe.Set(ctx, cacheKey(name), strconv.FormatInt(n, 10), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("redis cache fill failed (continuing)", "error", err)
	}
	return out, nil
}

func (c *UnitCountCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
