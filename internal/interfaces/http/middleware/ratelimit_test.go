package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"kyc-onboard.backend/pkg/redis"
)

func newLimitedRouter(requests int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/login", RateLimitMiddleware(requests, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_EnforcesWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	r := newLimitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(r).Code)
	}

	w := hit(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), "Rate limit exceeded. Try again later.")

	// the counter resets once the window lapses
	mr.FastForward(time.Minute + time.Second)
	require.Equal(t, http.StatusOK, hit(r).Code)
}

func TestRateLimitMiddleware_PassThroughWithoutRedis(t *testing.T) {
	redis.SetClient(nil)

	r := newLimitedRouter(1, time.Minute)
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hit(r).Code)
	}
}

func TestRateLimitMiddleware_BackendErrorDoesNotBlock(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	mr.Close()

	r := newLimitedRouter(1, time.Minute)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(r).Code)
	}
}
