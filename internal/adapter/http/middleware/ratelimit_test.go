package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	redisStore "campus-access-gateway/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTapLimiter(t *testing.T, rule RateLimitRule) (*gin.Engine, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redisStore.NewRateLimitStore(client)

	r := gin.New()
	r.POST("/tap", TapRateLimiter(store, rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, mr
}

func postTap(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tap", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTapRateLimiter_PerCard(t *testing.T) {
	r, _ := setupTapLimiter(t, RateLimitRule{Limit: 2, Window: time.Minute})

	w := postTap(r, `{"card_uid":"RFID_001","service":"mess"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = postTap(r, `{"card_uid":"RFID_001","service":"mess"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// Third tap for the same card is rejected
	w = postTap(r, `{"card_uid":"RFID_001","service":"mess"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// A different card is unaffected
	w = postTap(r, `{"card_uid":"RFID_002","service":"mess"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTapRateLimiter_BodyStillReadableByHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redisStore.NewRateLimitStore(client)

	r := gin.New()
	r.POST("/tap", TapRateLimiter(store, RateLimitRule{Limit: 10, Window: time.Minute}, zerolog.Nop()), func(c *gin.Context) {
		var body struct {
			CardUID string `json:"card_uid"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"card_uid": body.CardUID})
	})

	w := postTap(r, `{"card_uid":"RFID_001","service":"mess"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "RFID_001")
}

func TestTapRateLimiter_DegradesOpenWhenRedisDown(t *testing.T) {
	r, mr := setupTapLimiter(t, RateLimitRule{Limit: 1, Window: time.Minute})
	mr.Close()

	// Redis is gone; taps still pass through
	for i := 0; i < 3; i++ {
		w := postTap(r, `{"card_uid":"RFID_001","service":"mess"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
