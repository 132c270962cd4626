package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campusroom/config"
	"campusroom/infras/jwt"
	jwtMocks "campusroom/infras/jwt/mocks"
	"campusroom/infras/otel/mocks"
	"campusroom/permissions"
	"campusroom/shared/cache"
	cacheMocks "campusroom/shared/cache/mocks"
	"campusroom/shared/constant"
	"campusroom/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, jwtService jwt.JWT, cfg *config.Config) http.Handler {
	t.Helper()

	perms := permissions.Get()
	require.NotNil(t, perms)

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), perms, cfg)
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authRole.APIKey)
		r.Use(authRole.Auth)
		r.Use(authRole.RBAC)

		r.Route("/v1", func(r chi.Router) {
			r.Post("/auth/login", ok)
			r.Post("/reservations/", ok)
			r.Patch("/rooms/{code}", ok)
			r.Get("/rooms/{code}/unlisted", ok)
		})
	})

	return r
}

func TestAuthRole(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	tests := []struct {
		name       string
		method     string
		path       string
		header     map[string]string
		setup      func(j *jwtMocks.MockJWT)
		wantStatus int
	}{
		{
			name:       "public route needs no token",
			method:     http.MethodPost,
			path:       "/v1/auth/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			method:     http.MethodPost,
			path:       "/v1/reservations/",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodPost,
			path:   "/v1/reservations/",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "student may reserve",
			method: http.MethodPost,
			path:   "/v1/reservations/",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u1", NationalID: "123456782", Role: constant.RoleStudent, TokenID: "t1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "lecturer may not edit rooms",
			method: http.MethodPatch,
			path:   "/v1/rooms/Safra%20102",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u2", NationalID: "000000018", Role: constant.RoleLecturer, TokenID: "t2"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "route missing from the table is denied",
			method: http.MethodGet,
			path:   "/v1/rooms/Legacy%20101/unlisted",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u3", NationalID: "000000026", Role: constant.RoleStaff, TokenID: "t3"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "wrong api key",
			method:     http.MethodPost,
			path:       "/v1/reservations/",
			header:     map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "internal api key skips user auth",
			method:     http.MethodPatch,
			path:       "/v1/rooms/Katzir%20305",
			header:     map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setup != nil {
				tt.setup(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService, cfg).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func newRateLimited(redisCache cache.RedisCache, cfg *config.Config) http.Handler {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func rateLimitConfig(maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	cfg := rateLimitConfig(2)

	tests := []struct {
		name          string
		setup         func(c *cacheMocks.MockRedisCache)
		wantStatus    int
		wantRemaining string
	}{
		{
			name: "first request in window",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(1), nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name: "last request in window",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(2), nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "0",
		},
		{
			name: "over the limit",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)
			},
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name: "cache down lets the request through",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setup(redisCache)

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms/", nil)
			req.RemoteAddr = "10.0.0.7:51234"

			rec := httptest.NewRecorder()
			newRateLimited(redisCache, cfg).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

// counterCache is an in-memory stand-in for Redis counters. Each call takes a
// round trip so concurrent callers overlap.
type counterCache struct {
	cache.RedisCache

	mu     sync.Mutex
	counts map[string]int64
}

func (c *counterCache) Incr(_ context.Context, key string, _ int) (int64, error) {
	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[key]++

	return c.counts[key], nil
}

func TestRateLimitConcurrentClient(t *testing.T) {
	const (
		maxRequests = 5
		clients     = 50
	)

	handler := newRateLimited(&counterCache{counts: map[string]int64{}}, rateLimitConfig(maxRequests))

	var (
		wg     sync.WaitGroup
		passed atomic.Int64
	)

	start := make(chan struct{})

	for range clients {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms/", nil)
			req.RemoteAddr = "10.0.0.7:51234"
			req.Header.Set(constant.RequestHeaderUserAgent, "kiosk")

			<-start

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code == http.StatusOK {
				passed.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	// A window boundary during the burst can admit one extra batch.
	assert.GreaterOrEqual(t, passed.Load(), int64(maxRequests))
	assert.LessOrEqual(t, passed.Load(), int64(2*maxRequests))
}

func TestRateLimitClientIdentity(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		header     map[string]string
		wantIP     string
	}{
		{
			name:       "forwarding headers ignored without a trusted proxy",
			remoteAddr: "203.0.113.9:40000",
			header: map[string]string{
				constant.RequestHeaderForwardedFor: "198.51.100.1",
				constant.RequestHeaderRealIP:       "198.51.100.2",
			},
			wantIP: "203.0.113.9",
		},
		{
			name:       "forwarding headers ignored from an untrusted peer",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "203.0.113.9:40000",
			header:     map[string]string{constant.RequestHeaderForwardedFor: "198.51.100.1"},
			wantIP:     "203.0.113.9",
		},
		{
			name:       "nearest untrusted hop behind a trusted proxy",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:40000",
			header:     map[string]string{constant.RequestHeaderForwardedFor: "1.1.1.1, 198.51.100.7, 10.9.9.9"},
			wantIP:     "198.51.100.7",
		},
		{
			name:       "real ip behind a trusted proxy",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:40000",
			header:     map[string]string{constant.RequestHeaderRealIP: "198.51.100.8"},
			wantIP:     "198.51.100.8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := rateLimitConfig(10)
			cfg.App.TrustedProxies = tt.trusted

			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			redisCache.EXPECT().
				Incr(gomock.Any(), gomock.Any(), 60).
				DoAndReturn(func(_ context.Context, key string, _ int) (int64, error) {
					assert.True(t, strings.HasPrefix(key, "limiter:"+tt.wantIP+":"), key)

					return 1, nil
				})

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms/", nil)
			req.RemoteAddr = tt.remoteAddr

			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRateLimited(redisCache, cfg).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
