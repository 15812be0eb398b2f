package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/glowup/pkg/slogx"
	"golang.org/x/time/rate"
)

// Limit is a token bucket refilled at Requests per Window.
type Limit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (l Limit) perSecond() rate.Limit {
	if l.Window <= 0 || l.Requests <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// Default profiles. LimitFromEnv lets deployments override them with
// RATELIMIT_{NAME}_REQUESTS, RATELIMIT_{NAME}_WINDOW_SEC and RATELIMIT_{NAME}_BURST.
var (
	// WriteLimit guards endpoints that dispatch state changes.
	WriteLimit = Limit{Requests: 60, Window: time.Minute, Burst: 20}

	// ReadLimit guards state and navigation reads.
	ReadLimit = Limit{Requests: 600, Window: time.Minute, Burst: 100}

	// EventLimit guards the analytics sink.
	EventLimit = Limit{Requests: 300, Window: time.Minute, Burst: 50}
)

func LimitFromEnv(name string, def Limit) Limit {
	l := def
	prefix := "RATELIMIT_" + strings.ToUpper(name) + "_"

	if n, ok := positiveEnv(prefix + "REQUESTS"); ok {
		l.Requests = n
	}
	if n, ok := positiveEnv(prefix + "WINDOW_SEC"); ok {
		l.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv(prefix + "BURST"); ok {
		l.Burst = n
	}
	return l
}

func positiveEnv(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyFunc groups requests into rate limit buckets.
type KeyFunc func(*http.Request) string

// ClientIP returns the caller address, honouring X-Forwarded-For and
// X-Real-IP from a fronting proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type limiterSet struct {
	limit Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	swept    time.Time
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Idle buckets are full buckets; drop them every few minutes.
	if time.Since(s.swept) > 5*time.Minute {
		for k, l := range s.limiters {
			if l.Tokens() >= float64(s.limit.Burst) {
				delete(s.limiters, k)
			}
		}
		s.swept = time.Now()
	}

	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(s.limit.perSecond(), s.limit.Burst)
		s.limiters[key] = l
	}
	return l
}

// RateLimit rejects requests with 429 once the bucket for key(r) is empty.
// Requests with an empty key pass through.
func RateLimit(limit Limit, key KeyFunc) Middleware {
	set := &limiterSet{
		limit:    limit,
		limiters: make(map[string]*rate.Limiter),
		swept:    time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			lim := set.get(k)
			if lim.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.Reserve()
			retry := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"path", r.URL.Path,
				"retry_after", retry,
			)

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

func RateLimitByIP(limit Limit) Middleware {
	return RateLimit(limit, ClientIP)
}
