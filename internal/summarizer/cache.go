package summarizer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
)

type implCached struct {
	inner     Summarizer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	logger    logger.Logger
}

// NewCached wraps inner with a Redis cache of successful summaries. The
// namespace should change whenever the backend or model does.
func NewCached(inner Summarizer, rdb *redis.Client, ttl time.Duration, namespace string, log logger.Logger) Summarizer {
	return &implCached{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		logger:    log,
	}
}

// OpenRedis connects to redisURL and checks the connection.
func OpenRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// CacheKey derives a deterministic key from the chapter and its transcript.
func CacheKey(namespace string, req Request) string {
	c := req.Chapter
	joined := strings.Join([]string{
		namespace,
		req.VideoTitle,
		c.Title,
		strconv.Itoa(c.StartTime),
		strconv.Itoa(c.EndTime),
		req.PlainText,
	}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("chapterflow:summary:%x", hash[:16])
}

func (c *implCached) Generate(ctx context.Context, req Request) Result {
	key := CacheKey(c.namespace, req)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		c.logger.Debug(ctx, "Summary cache hit for %q", req.Chapter.Title)
		return Success(cached)
	case err != nil && !errors.Is(err, redis.Nil):
		c.logger.Warn(ctx, "Summary cache read failed: %v", err)
	}

	res := c.inner.Generate(ctx, req)
	if !res.OK() {
		return res
	}

	if err := c.rdb.Set(ctx, key, res.Text, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "Summary cache write failed: %v", err)
	}
	return res
}
