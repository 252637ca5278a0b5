package middleware

import (
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"project/utils"
)

// In-memory sliding-window rate limiters, keyed by client IP or by
// authenticated user. Designed to be swappable for Redis later.

type timestamps []int64 // unix nanos

// clientIPGeneric returns the client IP string. X-Forwarded-For / X-Real-IP
// are only honored when the remote address matches one of the trusted
// proxies (single IPs or CIDRs).
func clientIPGeneric(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, _ := net.SplitHostPort(r.RemoteAddr)
	remoteIP := net.ParseIP(remoteHost)
	trusted := false
	for _, cidr := range trustedCIDR {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil && remoteIP != nil && ipnet.Contains(remoteIP) {
				trusted = true
				break
			}
			continue
		}
		if ip := net.ParseIP(cidr); ip != nil && remoteIP != nil && ip.Equal(remoteIP) {
			trusted = true
			break
		}
	}
	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if len(parts) > 0 {
				return strings.TrimSpace(parts[0])
			}
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			return strings.TrimSpace(xr)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func prune(ts timestamps, cutoff int64) timestamps {
	i := 0
	for i < len(ts) && ts[i] < cutoff {
		i++
	}
	return ts[i:]
}

// IPRateLimiter applies a per-IP request cap over a sliding window.
type IPRateLimiter struct {
	max         int
	window      time.Duration
	mu          sync.Mutex
	state       map[string]timestamps
	trustedCIDR []string
}

func NewIPRateLimiter(maxReq int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		max:    maxReq,
		window: window,
		state:  make(map[string]timestamps),
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		l.trustedCIDR = strings.Split(v, ",")
	}
	go l.cleanupLoop()
	return l
}

func (l *IPRateLimiter) allow(key string) bool {
	now := time.Now().UnixNano()
	cutoff := now - l.window.Nanoseconds()
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := prune(l.state[key], cutoff)
	if len(ts) >= l.max {
		l.state[key] = ts
		return false
	}
	l.state[key] = append(ts, now)
	return true
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPGeneric(r, l.trustedCIDR)
		if !l.allow(ip) {
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) cleanupLoop() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-l.window).UnixNano()
		l.mu.Lock()
		for k, ts := range l.state {
			ts = prune(ts, cutoff)
			if len(ts) == 0 {
				delete(l.state, k)
			} else {
				l.state[k] = ts
			}
		}
		l.mu.Unlock()
	}
}

// UserRateLimiter applies per-user caps, with separate budgets for reads
// (GET) and writes (everything else). Unauthenticated requests fall back to
// the client IP as key.
type UserRateLimiter struct {
	maxRead  int
	maxWrite int
	window   time.Duration
	mu       sync.Mutex
	state    map[string]timestamps
}

func NewUserRateLimiter(maxReqRead, maxReqWrite, windowSec int) *UserRateLimiter {
	l := &UserRateLimiter{
		maxRead:  maxReqRead,
		maxWrite: maxReqWrite,
		window:   time.Duration(windowSec) * time.Second,
		state:    make(map[string]timestamps),
	}
	go l.cleanupLoop()
	return l
}

func (l *UserRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIPGeneric(r, nil)
		if uid, ok := utils.GetUserID(r); ok && uid != 0 {
			key = "u:" + itoa(uid)
		}
		max := l.maxWrite
		cat := ":w"
		if r.Method == http.MethodGet {
			max = l.maxRead
			cat = ":r"
		}
		now := time.Now().UnixNano()
		cutoff := now - l.window.Nanoseconds()
		l.mu.Lock()
		ts := prune(l.state[key+cat], cutoff)
		over := len(ts) >= max
		if !over {
			ts = append(ts, now)
		}
		l.state[key+cat] = ts
		l.mu.Unlock()
		if over {
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *UserRateLimiter) cleanupLoop() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-l.window).UnixNano()
		l.mu.Lock()
		for k, ts := range l.state {
			ts = prune(ts, cutoff)
			if len(ts) == 0 {
				delete(l.state, k)
			} else {
				l.state[k] = ts
			}
		}
		l.mu.Unlock()
	}
}

func itoa(v uint) string {
	if v == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b[i:])
}

// Account lockout tracking for failed logins: 5 failures within 15 minutes
// lock the account for 15 minutes.
var (
	lockoutMu sync.Mutex
	failures  = make(map[uint]timestamps)
	lockedAt  = make(map[uint]time.Time)
)

const (
	lockoutThreshold = 5
	lockoutWindow    = 15 * time.Minute
	lockoutDuration  = 15 * time.Minute
)

func IsAccountLocked(userID uint) (bool, time.Duration) {
	lockoutMu.Lock()
	defer lockoutMu.Unlock()
	if at, ok := lockedAt[userID]; ok {
		remaining := lockoutDuration - time.Since(at)
		if remaining > 0 {
			return true, remaining
		}
		delete(lockedAt, userID)
		delete(failures, userID)
	}
	return false, 0
}

func RecordFailedLogin(userID uint) {
	now := time.Now().UnixNano()
	cutoff := now - lockoutWindow.Nanoseconds()
	lockoutMu.Lock()
	defer lockoutMu.Unlock()
	ts := append(prune(failures[userID], cutoff), now)
	failures[userID] = ts
	if len(ts) >= lockoutThreshold {
		lockedAt[userID] = time.Now()
	}
}

func ResetFailedLogin(userID uint) {
	lockoutMu.Lock()
	defer lockoutMu.Unlock()
	delete(failures, userID)
	delete(lockedAt, userID)
}
