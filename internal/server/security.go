package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
	"github.com/osse101/PlantTycoon_Go/internal/metrics"
)

// AuthMiddleware requires a matching X-API-Key on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)
				metrics.HTTPRequestsRejected.WithLabelValues(metrics.ReasonUnauthorized).Inc()

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipActivity counts one client's requests within the current window
type ipActivity struct {
	mu         sync.Mutex
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per client IP.
// Counters live in an expiring LRU so a window resets once an IP goes quiet
// and memory stays bounded under many distinct clients.
type SuspiciousActivityDetector struct {
	mu       sync.Mutex
	activity *expirable.LRU[string, *ipActivity]
	limit    int
}

// NewSuspiciousActivityDetector tracks up to DetectorMaxClients IPs over DetectorWindow
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetectorWithLimits(DetectorMaxClients, DetectorWindow, DetectorRequestLimit)
}

// NewSuspiciousActivityDetectorWithLimits builds a detector with explicit bounds
func NewSuspiciousActivityDetectorWithLimits(maxClients int, window time.Duration, requestLimit int) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		activity: expirable.NewLRU[string, *ipActivity](maxClients, nil, window),
		limit:    requestLimit,
	}
}

func (s *SuspiciousActivityDetector) entry(ip string) *ipActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.activity.Get(ip); ok {
		return a
	}
	a := &ipActivity{}
	s.activity.Add(ip, a)
	return a
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	a := s.entry(ip)
	a.mu.Lock()
	a.failedAuth++
	count := a.failedAuth
	a.mu.Unlock()

	if count >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// RecordRequest counts a request and reports false once the IP is over its limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	a := s.entry(ip)
	a.mu.Lock()
	a.requests++
	count := a.requests
	a.mu.Unlock()

	if count <= s.limit {
		return true
	}
	// Log every 100 blocked requests
	if count%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

// SecurityLoggingMiddleware enforces the per-IP request limit
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if !detector.RecordRequest(ip) {
				metrics.HTTPRequestsRejected.WithLabelValues(metrics.ReasonRateLimited).Inc()
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// X-Forwarded-For is only honoured when the direct peer is a trusted proxy,
// and then the rightmost hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}

	if trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
