package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count int
	until time.Time
}

// RateLimit allows limit requests per client IP in each fixed window of per.
// Expired buckets are pruned lazily once the map grows past a threshold.
func RateLimit(limit int, per time.Duration, onDeny func(w http.ResponseWriter, r *http.Request, status int)) func(http.Handler) http.Handler {
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ip := clientIPForRateLimit(r)
			now := time.Now()
			mu.Lock()
			if len(buckets) > 10000 {
				for key, b := range buckets {
					if now.After(b.until) {
						delete(buckets, key)
					}
				}
			}
			b, ok := buckets[ip]
			if !ok || now.After(b.until) {
				b = &bucket{until: now.Add(per)}
				buckets[ip] = b
			}
			if b.count >= limit {
				retry := int(time.Until(b.until).Seconds()) + 1
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				onDeny(w, r, http.StatusTooManyRequests)
				return
			}
			b.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPForRateLimit(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
