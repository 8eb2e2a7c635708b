package security

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"creai_edu_backend/internal/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/api/modules", ok)
	r.GET("/health", ok)
	r.GET("/metrics", ok)
	return r
}

func serve(r *gin.Engine, method, path, remote string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remote
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func fixedLimiter(maxRequests int, window time.Duration) *ipLimiter {
	l := newIPLimiter(maxRequests, window)
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	t.Parallel()
	r := newRouter(rateLimit(fixedLimiter(2, time.Minute), []string{"/health", "/metrics"}))

	tests := []struct {
		name   string
		path   string
		remote string
		want   int
	}{
		{"first", "/api/modules", "192.0.2.1:1000", http.StatusOK},
		{"second", "/api/modules", "192.0.2.1:1001", http.StatusOK},
		{"third rejected", "/api/modules", "192.0.2.1:1002", http.StatusTooManyRequests},
		{"other client", "/api/modules", "192.0.2.2:1000", http.StatusOK},
		{"health skipped", "/health", "192.0.2.1:1003", http.StatusOK},
		{"metrics skipped", "/metrics", "192.0.2.1:1004", http.StatusOK},
	}
	for _, tt := range tests {
		w := serve(r, http.MethodGet, tt.path, tt.remote, nil)
		if w.Code != tt.want {
			t.Fatalf("%s: got=%d want=%d", tt.name, w.Code, tt.want)
		}
	}
}

func TestRateLimiterResponse(t *testing.T) {
	t.Parallel()
	r := newRouter(rateLimit(fixedLimiter(1, time.Minute), nil))

	serve(r, http.MethodGet, "/api/modules", "192.0.2.9:1", nil)
	w := serve(r, http.MethodGet, "/api/modules", "192.0.2.9:1", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: got=%d want=%d", w.Code, http.StatusTooManyRequests)
	}
	// 每分钟 1 个令牌，约需等待 60 秒
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retry < 59 || retry > 61 {
		t.Fatalf("unexpected Retry-After: got=%q want=60", w.Header().Get("Retry-After"))
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Message != MsgTooManyRequests {
		t.Fatalf("unexpected body: got=%+v want message=%q", body, MsgTooManyRequests)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	t.Parallel()
	r := newRouter(RateLimiter(config.RateLimitConfig{}))

	for i := 0; i < 20; i++ {
		if w := serve(r, http.MethodGet, "/api/modules", "192.0.2.1:1", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: got=%d want=%d", i, w.Code, http.StatusOK)
		}
	}
}

func TestIPLimiterSweepsIdleVisitors(t *testing.T) {
	t.Parallel()
	l := fixedLimiter(5, time.Minute)
	start := l.now()

	l.reserve("a")
	l.reserve("b")
	l.now = func() time.Time { return start.Add(10 * time.Minute) }
	l.reserve("c")

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.visitors) != 1 || l.visitors["c"] == nil {
		t.Fatalf("unexpected visitors after sweep: got=%d want=1", len(l.visitors))
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         config.CORSConfig
		method      string
		origin      string
		status      int
		allowOrigin string
		credentials string
		maxAge      string
	}{
		{"allowed preflight", config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}, AllowCredentials: true, MaxAgeSeconds: 600}, http.MethodOptions, "http://localhost:5173", http.StatusNoContent, "http://localhost:5173", "true", "600"},
		{"trailing slash in config", config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173/"}}, http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173", "", ""},
		{"unknown origin", config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}, http.MethodGet, "http://evil.example", http.StatusOK, "", "", ""},
		{"wildcard without credentials", config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, http.MethodGet, "http://any.example", http.StatusOK, "*", "", ""},
		{"no origin", config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}, http.MethodGet, "", http.StatusOK, "", "", ""},
	}
	for _, tt := range tests {
		r := newRouter(CORS(tt.cfg))
		header := map[string]string{}
		if tt.origin != "" {
			header["Origin"] = tt.origin
		}
		w := serve(r, tt.method, "/api/modules", "192.0.2.1:1", header)

		if w.Code != tt.status {
			t.Fatalf("%s: status got=%d want=%d", tt.name, w.Code, tt.status)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.allowOrigin {
			t.Fatalf("%s: allow origin got=%q want=%q", tt.name, got, tt.allowOrigin)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.credentials {
			t.Fatalf("%s: credentials got=%q want=%q", tt.name, got, tt.credentials)
		}
		if got := w.Header().Get("Access-Control-Max-Age"); got != tt.maxAge {
			t.Fatalf("%s: max age got=%q want=%q", tt.name, got, tt.maxAge)
		}
	}
}
