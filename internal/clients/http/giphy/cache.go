package giphy

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
)

const staleSuffix = "_stale"

// SearchKey derives the cache key of a search page.
func SearchKey(query string, limit, offset int) string {
	return "giphy_search_" + digest(query+"_"+strconv.Itoa(limit)+"_"+strconv.Itoa(offset))
}

// GifKey derives the cache key of a single GIF.
func GifKey(id string) string {
	return "giphy_gif_" + id
}

// TrendingKey derives the cache key of a trending page.
func TrendingKey(limit, offset int) string {
	return "giphy_trending_" + digest(strconv.Itoa(limit)+"_"+strconv.Itoa(offset))
}

func digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ResultCache stores transformed results in a kvstore.Store. Every failure is
// treated as a miss; caching never fails a request.
type ResultCache struct {
	kv       kvstore.Store
	staleTTL time.Duration
	logger   *slog.Logger
}

// NewResultCache builds a cache over kv. A positive staleTTL also keeps a
// shadow copy of every entry for fallback reads.
func NewResultCache(kv kvstore.Store, staleTTL time.Duration, logger *slog.Logger) *ResultCache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ResultCache{kv: kv, staleTTL: staleTTL, logger: logger}
}

// Collection reads a fresh collection entry.
func (c *ResultCache) Collection(ctx context.Context, key string) (GifCollection, bool) {
	var out GifCollection
	return out, c.read(ctx, key, &out)
}

// Gif reads a fresh single-GIF entry.
func (c *ResultCache) Gif(ctx context.Context, key string) (Gif, bool) {
	var out Gif
	return out, c.read(ctx, key, &out)
}

// FallbackCollection reads the fresh entry, then the stale shadow copy.
func (c *ResultCache) FallbackCollection(ctx context.Context, key string) (GifCollection, bool) {
	if out, ok := c.Collection(ctx, key); ok {
		return out, true
	}
	var out GifCollection
	return out, c.staleTTL > 0 && c.read(ctx, key+staleSuffix, &out)
}

// FallbackGif reads the fresh entry, then the stale shadow copy.
func (c *ResultCache) FallbackGif(ctx context.Context, key string) (Gif, bool) {
	if out, ok := c.Gif(ctx, key); ok {
		return out, true
	}
	var out Gif
	return out, c.staleTTL > 0 && c.read(ctx, key+staleSuffix, &out)
}

func (c *ResultCache) PutCollection(ctx context.Context, key string, value GifCollection, ttl time.Duration) {
	c.write(ctx, key, value, ttl)
}

func (c *ResultCache) PutGif(ctx context.Context, key string, value Gif, ttl time.Duration) {
	c.write(ctx, key, value, ttl)
}

func (c *ResultCache) read(ctx context.Context, key string, dst any) bool {
	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "giphy cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.WarnContext(ctx, "giphy cache entry undecodable", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (c *ResultCache) write(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "giphy cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.kv.Set(ctx, key, raw, ttl); err != nil {
		c.logger.WarnContext(ctx, "giphy cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if c.staleTTL <= 0 {
		return
	}
	if err := c.kv.Set(ctx, key+staleSuffix, raw, c.staleTTL); err != nil {
		c.logger.WarnContext(ctx, "giphy stale cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
