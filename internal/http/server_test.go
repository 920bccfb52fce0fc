package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caiograbovskii/financaspro/internal/session"
)

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/transactions", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(s, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

func TestSessionTouchOnRequest(t *testing.T) {
	svc := newFakeService()
	sessions := session.NewTracker(30 * time.Minute)
	s := NewServer("127.0.0.1:0", svc, Options{Sessions: sessions})
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	doRequest(s, http.MethodGet, "/api/transactions", "alice", nil)

	if _, ok := sessions.Deadline("alice"); !ok {
		t.Error("request did not touch the session")
	}
	if _, ok := sessions.Deadline("bob"); ok {
		t.Error("unexpected session for bob")
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := &rateLimiter{limit: defaultRequestLimit, clients: make(map[string]*clientInfo)}
	metrics := &securityMetrics{}

	for i := 0; i < defaultRequestLimit; i++ {
		if !rl.allow("1.2.3.4", metrics) {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
	}
	if rl.allow("1.2.3.4", metrics) {
		t.Errorf("request %d should be limited", defaultRequestLimit+1)
	}
	if metrics.rateLimitHits != 1 {
		t.Errorf("rateLimitHits = %d, want 1", metrics.rateLimitHits)
	}

	// Other clients are unaffected.
	if !rl.allow("5.6.7.8", metrics) {
		t.Error("different client should be allowed")
	}
}

func TestRateLimiterCustomLimit(t *testing.T) {
	rl := &rateLimiter{limit: 2, clients: make(map[string]*clientInfo)}

	if !rl.allow("1.2.3.4", nil) || !rl.allow("1.2.3.4", nil) {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("1.2.3.4", nil) {
		t.Error("third request should be limited at limit 2")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := &rateLimiter{limit: defaultRequestLimit, clients: make(map[string]*clientInfo)}
	rl.clients["stale"] = &clientInfo{lastRequest: time.Now().Add(-20 * time.Minute)}
	rl.clients["fresh"] = &clientInfo{lastRequest: time.Now()}

	rl.cleanupStaleEntries()

	if _, ok := rl.clients["stale"]; ok {
		t.Error("stale entry survived cleanup")
	}
	if _, ok := rl.clients["fresh"]; !ok {
		t.Error("fresh entry removed")
	}
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.7:40000",
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy honors forwarded-for",
			remoteAddr: "10.0.0.1:40000",
			xff:        "198.51.100.9, 10.0.0.1",
			want:       "198.51.100.9",
		},
		{
			name:       "untrusted peer ignores forwarded-for",
			remoteAddr: "203.0.113.7:40000",
			xff:        "198.51.100.9",
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy falls back to real-ip",
			remoteAddr: "127.0.0.1:40000",
			xri:        "198.51.100.10",
			want:       "198.51.100.10",
		},
		{
			name:       "invalid forwarded value falls through",
			remoteAddr: "10.0.0.1:40000",
			xff:        "not-an-ip",
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"normal api call", "/api/transactions?year=2024&month=3", false},
		{"path traversal", "/api/../etc/passwd", true},
		{"wordpress probe", "/wp-admin/setup.php", true},
		{"env file probe in query", "/api/transactions?file=.env", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if got := detectSuspiciousRequest(req, nil); got != tt.want {
				t.Errorf("detectSuspiciousRequest(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
