package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"campusroom/config"
	"campusroom/infras/jwt"
	"campusroom/infras/otel"
	"campusroom/permissions"
	"campusroom/shared/constant"
	"campusroom/shared/failure"
	"campusroom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type internalCallKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole is mounted as APIKey, then Auth, then RBAC. A valid API key marks
// the request as internal and the later two let it through.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// routePattern resolves the chi pattern, e.g. /v1/rooms/{code}, that the
// request will be dispatched to.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func (m *authRoleImpl) public(request *http.Request, pattern string) bool {
	if m.permission == nil {
		return false
	}

	permission, found := m.permission.Lookup(pattern, request.Method)

	return found && permission.Skip
}

var tokenFailures = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
	{jwt.ErrInvalidToken, "Invalid token"},
}

func tokenFailure(err error) error {
	for _, tf := range tokenFailures {
		if errors.Is(err, tf.err) {
			return failure.Unauthorized(tf.message)
		}
	}

	return failure.Unauthorized("Token validation failed")
}

// Auth validates the bearer access token and stores the caller identity in
// the request context. Routes flagged skip in the permission table are public.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		pattern := routePattern(request)
		if isInternal(ctx) || m.public(request, pattern) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       pattern,
			"http.method":     request.Method,
		})

		reject := func(err error) {
			scope.TraceError(err)
			response.WithError(writer, err)
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			reject(failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			reject(failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			reject(tokenFailure(err))

			return
		}

		if claims.UserID == constant.Empty || claims.NationalID == constant.Empty || claims.Role == constant.Empty {
			log.Error().Str("token_id", claims.TokenID).Msg("JWT claims are incomplete")
			reject(failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = request.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyNationalID, claims.NationalID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC denies any route that is missing from the permission table.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if isInternal(ctx) || (m.permission != nil && m.permission.Skip) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		pattern := routePattern(request)
		permission, found := m.permission.Lookup(pattern, request.Method)
		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !found || !permission.Allows(userRole) {
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"route":         pattern,
				"listed":        found,
			})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal services call any route with X-API-Key. A request
// without the header continues as a client call.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == constant.Empty || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallKey{}, true)))
	})
}
