package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/mktops/hid-generator/internal/config"
)

func newCacheTestServer(t *testing.T) (*echo.Echo, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache:test"}

	hits := 0
	e := echo.New()
	e.GET("/v1/history", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"hits": hits})
	}, NewRedisCache(cfg, rdb))
	e.DELETE("/v1/admin/history", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, NewCacheInvalidator(cfg, rdb))
	e.POST("/v1/admin/types", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}, NewCacheInvalidator(cfg, rdb))

	return e, &hits
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

// A cached read must be served from Redis until a mutation lands, and
// must be recomputed on the first read after it.
func TestCacheInvalidatedByMutation(t *testing.T) {
	e, hits := newCacheTestServer(t)

	rec := do(e, http.MethodGet, "/v1/history")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, *hits)

	rec = do(e, http.MethodGet, "/v1/history")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, *hits, "second read must come from the cache")

	rec = do(e, http.MethodDelete, "/v1/admin/history")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/v1/history")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, *hits, "read after a mutation must hit the handler again")
}

// A rejected mutation changes nothing, so the cache stays warm.
func TestCacheKeptOnFailedMutation(t *testing.T) {
	e, hits := newCacheTestServer(t)

	do(e, http.MethodGet, "/v1/history")
	rec := do(e, http.MethodPost, "/v1/admin/types")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/v1/history")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, *hits)
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: false}
	e := echo.New()
	e.GET("/v1/history", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}, NewRedisCache(cfg, nil))

	rec := do(e, http.MethodGet, "/v1/history")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
