package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"campusroom/shared"
	"campusroom/shared/constant"
	"campusroom/transport/http/response"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client in fixed windows of
// RATE_LIMITER_WINDOW_SECONDS. Each window has its own key, so a busy client
// cannot keep extending its window. When the cache is unreachable requests
// pass through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limiter := a.config.App.RateLimiter
		if !limiter.Enable || limiter.MaxRequests <= 0 || limiter.WindowSeconds <= 0 {
			return next
		}

		limit := int64(limiter.MaxRequests)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			window := time.Now().Unix() / int64(limiter.WindowSeconds)
			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r), strconv.FormatInt(window, 10))

			count, err := a.cache.Incr(r.Context(), key, limiter.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter cache unavailable")
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, limit-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > limit {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

// getClientIP returns the socket peer unless that peer is a trusted proxy.
// Behind a trusted proxy the nearest untrusted X-Forwarded-For hop wins, then
// X-Real-IP.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}

	if !a.trusted(peer) {
		return peer
	}

	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		hops := strings.Split(xff, ",")

		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !a.trusted(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); xri != "" {
		return xri
	}

	return peer
}

func (a *appMiddleware) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	addr = addr.Unmap()

	for _, prefix := range a.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}
