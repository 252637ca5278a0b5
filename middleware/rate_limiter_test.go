package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIPGeneric_DirectRemote(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "203.0.113.5:54321"
	ip := clientIPGeneric(req, nil)
	if ip != "203.0.113.5" {
		t.Fatalf("expected direct remote IP, got %s", ip)
	}
}

func TestClientIPGeneric_TrustedProxyXFF(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.10:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.10")
	ip := clientIPGeneric(req, []string{"198.51.100.10"})
	if ip != "203.0.113.7" {
		t.Fatalf("expected X-Forwarded-For first value, got %s", ip)
	}
}

func TestClientIPGeneric_UntrustedProxyIgnoresXFF(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.11:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.8, 198.51.100.11")
	ip := clientIPGeneric(req, []string{"198.51.100.10"})
	if ip != "198.51.100.11" {
		t.Fatalf("expected remote IP when proxy untrusted, got %s", ip)
	}
}

func TestIPRateLimiterBlocksOverLimit(t *testing.T) {
	l := &IPRateLimiter{max: 2, window: time.Minute, state: map[string]timestamps{}}
	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatal("requests under the limit should be allowed")
	}
	if l.allow("10.0.0.1") {
		t.Fatal("request over the limit should be blocked")
	}
	if !l.allow("10.0.0.2") {
		t.Fatal("limits are per IP")
	}
}

func TestAccountLockout(t *testing.T) {
	const uid = uint(4242)
	ResetFailedLogin(uid)
	for i := 0; i < lockoutThreshold; i++ {
		RecordFailedLogin(uid)
	}
	locked, remaining := IsAccountLocked(uid)
	if !locked || remaining <= 0 {
		t.Fatalf("expected locked account, got locked=%v remaining=%v", locked, remaining)
	}
	ResetFailedLogin(uid)
	if locked, _ := IsAccountLocked(uid); locked {
		t.Fatal("reset should clear the lockout")
	}
}
