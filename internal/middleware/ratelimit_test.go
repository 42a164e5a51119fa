package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, addr string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter())

	var rejected bool
	for i := 0; i < 20; i++ {
		if hit(r, "10.0.0.1:1234") == http.StatusTooManyRequests {
			rejected = true
			break
		}
	}
	if !rejected {
		t.Fatal("expected the burst to be rejected eventually")
	}
}

func TestRateLimiterExpireKeepsActiveBuckets(t *testing.T) {
	rl := NewRateLimiter()
	r := newLimitedRouter(rl)

	// Exhaust the active IP's budget and register a stale one.
	for i := 0; i < 20; i++ {
		hit(r, "10.0.0.1:1234")
	}
	hit(r, "10.0.0.2:1234")
	rl.mu.Lock()
	rl.visitors["10.0.0.2"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.expire(time.Now().Add(-visitorTTL))

	rl.mu.Lock()
	_, activeKept := rl.visitors["10.0.0.1"]
	_, staleKept := rl.visitors["10.0.0.2"]
	rl.mu.Unlock()
	if !activeKept {
		t.Error("recently seen visitor was dropped")
	}
	if staleKept {
		t.Error("stale visitor was not dropped")
	}

	// The surviving bucket is still the exhausted one, not a fresh burst.
	if code := hit(r, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("exhausted IP got %d after expiry pass, want 429", code)
	}
}

func TestRateLimiterIsolatesIPs(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter())

	// Exhaust the first IP's budget.
	for i := 0; i < 20; i++ {
		hit(r, "10.0.0.1:1234")
	}

	if code := hit(r, "10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("fresh IP got %d, want 200", code)
	}
}
