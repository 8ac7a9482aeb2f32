package assetapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
)

// RedisConfig configures the graph cache.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

const (
	defaultRedisAddr = "127.0.0.1:6379"
	defaultKeyPrefix = "assetmap:"
	defaultTTL       = 30 * time.Second
)

// CachedSource caches another Source's responses in redis. Redis failures are logged
// and the request goes to the wrapped source.
type CachedSource struct {
	next    Source
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Registry
}

var _ Source = (*CachedSource)(nil)

// NewCachedSource connects to redis and checks it's reachable.
func NewCachedSource(next Source, cfg RedisConfig, logger *slog.Logger, m *metrics.Registry) (*CachedSource, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaultRedisAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis graph cache: %w", err)
	}

	return NewCachedSourceWithClient(next, client, cfg.KeyPrefix, cfg.TTL, logger, m), nil
}

func NewCachedSourceWithClient(next Source, client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger, m *metrics.Registry) *CachedSource {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachedSource{
		next:    next,
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		logger:  lib.OrDiscard(logger),
		metrics: m,
	}
}

func (c *CachedSource) graphKey(assetType graphdata.AssetType) string {
	t := string(assetType)
	if t == "" {
		t = "all"
	}
	return c.prefix + "graph:" + t
}

func (c *CachedSource) impactKey(id string, depth int) string {
	return c.prefix + "impact:" + id + ":" + strconv.Itoa(depth)
}

func (c *CachedSource) Graph(ctx context.Context, assetType graphdata.AssetType) (graphdata.Graph, error) {
	return c.cached(ctx, c.graphKey(assetType), func() (graphdata.Graph, error) {
		return c.next.Graph(ctx, assetType)
	})
}

func (c *CachedSource) Impact(ctx context.Context, id string, depth int) (graphdata.Graph, error) {
	if err := checkDepth(depth); err != nil {
		return graphdata.Graph{}, err
	}
	return c.cached(ctx, c.impactKey(id, depth), func() (graphdata.Graph, error) {
		return c.next.Impact(ctx, id, depth)
	})
}

func (c *CachedSource) cached(ctx context.Context, key string, fetch func() (graphdata.Graph, error)) (graphdata.Graph, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var g graphdata.Graph
		if err := json.Unmarshal(raw, &g); err == nil {
			c.metrics.RecordCache("hit")
			return g, nil
		}
		c.logger.Warn("Dropping undecodable cache entry", "key", key)
		c.metrics.RecordCache("error")
	case errors.Is(err, redis.Nil):
		c.metrics.RecordCache("miss")
	default:
		c.logger.Warn("Graph cache read failed", "key", key, "error", err)
		c.metrics.RecordCache("error")
	}

	g, err := fetch()
	if err != nil {
		return graphdata.Graph{}, err
	}

	encoded, err := json.Marshal(g)
	if err != nil {
		return g, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("Graph cache write failed", "key", key, "error", err)
	}
	return g, nil
}

// Invalidate removes every key under the cache's prefix.
func (c *CachedSource) Invalidate(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return removed, fmt.Errorf("scan graph cache: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete graph cache keys: %w", err)
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (c *CachedSource) Close() error {
	return c.client.Close()
}
