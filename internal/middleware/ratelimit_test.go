package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(rl *RateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(pre...)
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w.Code
}

func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func TestRateLimit_AllowsNormalRequests(t *testing.T) {
	router := limitedRouter(NewRateLimiter(10, 10))

	if code := doRequest(router, "192.168.1.1:12345"); code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, code)
	}
}

func TestRateLimit_BlocksExcessiveRequests(t *testing.T) {
	router := limitedRouter(NewRateLimiter(1, 2))

	var lastCode int
	for i := 0; i < 5; i++ {
		lastCode = doRequest(router, "10.0.0.1:12345")
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d after burst exceeded, got %d", http.StatusTooManyRequests, lastCode)
	}
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	router := limitedRouter(NewRateLimiter(1, 1))

	if code := doRequest(router, "10.0.0.1:12345"); code != http.StatusOK {
		t.Errorf("IP1 first request: expected %d, got %d", http.StatusOK, code)
	}

	// A different IP has its own untouched budget
	if code := doRequest(router, "10.0.0.2:12345"); code != http.StatusOK {
		t.Errorf("IP2 first request: expected %d, got %d", http.StatusOK, code)
	}
}

func TestRateLimit_IndependentPerUser(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	// Two authenticated users behind the same IP get separate budgets
	user1 := limitedRouter(rl, asUser(1))
	user2 := limitedRouter(rl, asUser(2))

	if code := doRequest(user1, "10.0.0.9:12345"); code != http.StatusOK {
		t.Errorf("user 1 first request: expected %d, got %d", http.StatusOK, code)
	}
	if code := doRequest(user2, "10.0.0.9:12345"); code != http.StatusOK {
		t.Errorf("user 2 first request: expected %d, got %d", http.StatusOK, code)
	}
}

func TestRateLimit_UserBudgetFollowsAcrossIPs(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	router := limitedRouter(rl, asUser(7))

	if code := doRequest(router, "10.0.0.1:12345"); code != http.StatusOK {
		t.Errorf("first request: expected %d, got %d", http.StatusOK, code)
	}

	// Same user from a different IP still shares the spent budget
	if code := doRequest(router, "10.0.0.2:12345"); code != http.StatusTooManyRequests {
		t.Errorf("second request: expected %d, got %d", http.StatusTooManyRequests, code)
	}
}
