package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mktops/hid-generator/internal/config"
)

// cachedResponse is the payload stored in Redis.  The endpoints behind
// this middleware only ever emit small JSON bodies, so a JSON envelope is
// simpler than binary framing and still byte-identical on replay.
type cachedResponse struct {
	Status int    `json:"status"`
	CType  string `json:"ctype"`
	Body   []byte `json:"body"`
}

// captureWriter duplicates the response body while forwarding it to the
// client so a successful response can be stored after the handler runs.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// generationKey holds a counter that versions every cache entry.  Bumping
// it orphans all existing entries at once, which stands in for deleting
// them individually (the query string is hashed into the key, so the
// entries cannot be enumerated).
func generationKey(prefix string) string { return prefix + ":gen" }

// cacheKey derives a stable key from the generation, route and raw query.
// The option and history payloads are identical for every user, so the
// identity is deliberately left out of the key.
func cacheKey(prefix, gen string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%s:%x", prefix, gen, sum[:])
}

// currentGeneration reads the cache generation, defaulting to "0" when the
// counter has never been bumped.
func currentGeneration(ctx context.Context, rdb *redis.Client, prefix string) (string, error) {
	gen, err := rdb.Get(ctx, generationKey(prefix)).Result()
	if err == redis.Nil {
		return "0", nil
	}
	return gen, err
}

// NewRedisCache caches successful GET responses for cfg.TTL.  With caching
// disabled or no Redis available it degrades to a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			gen, err := currentGeneration(ctx, rdb, cfg.Prefix)
			if err != nil {
				// Redis trouble never blocks the request.
				return next(c)
			}
			key := cacheKey(cfg.Prefix, gen, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.CType)
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(cached.Status)
					_, _ = c.Response().Write(cached.Body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				payload, err := json.Marshal(cachedResponse{
					Status: cw.status,
					CType:  c.Response().Header().Get(echo.HeaderContentType),
					Body:   cw.buf.Bytes(),
				})
				if err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}

// NewCacheInvalidator bumps the cache generation after a successful
// mutation, so catalog edits and history changes become visible on the
// next read instead of after the TTL.  Registered on the write routes
// whose tables feed the cached GETs.
func NewCacheInvalidator(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if s := c.Response().Status; s >= http.StatusOK && s < http.StatusMultipleChoices {
				_ = rdb.Incr(context.Background(), generationKey(cfg.Prefix)).Err()
			}
			return nil
		}
	}
}
