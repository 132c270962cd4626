package middleware

import (
	"fmt"
	"net/http"
	"net/netip"

	"campusroom/config"
	"campusroom/infras/otel"
	"campusroom/shared/cache"
	"campusroom/shared/constant"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel           otel.Otel
	config         *config.Config
	cache          cache.RedisCache
	trustedProxies []netip.Prefix
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	trusted := make([]netip.Prefix, 0, len(config.App.TrustedProxies))

	for _, cidr := range config.App.TrustedProxies {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			log.Fatal().Err(err).Str("cidr", cidr).Msg("Invalid trusted proxy")
		}

		trusted = append(trusted, prefix.Masked())
	}

	return &appMiddleware{
		otel:           otel,
		config:         config,
		cache:          cache,
		trustedProxies: trusted,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
			"http.request_id": r.Header.Get(constant.RequestHeaderRequestID),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		attributes := map[string]any{
			"http.status_code": ww.Status(),
		}

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			attributes["http.route"] = rctx.RoutePattern()
		}

		scope.SetAttributes(attributes)

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s responded %d", r.Method, r.URL.Path, ww.Status()))
		}
	})
}
