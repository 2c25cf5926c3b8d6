package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxpos/cashier-admin/internal/api/metrics"
	"github.com/luxpos/cashier-admin/internal/core/domain"
	"github.com/luxpos/cashier-admin/internal/core/ports"
)

// identityKey is the context key under which Auth stores the caller identity.
const identityKey = "identity"

// SessionCache is an optional read-through cache for session lookups. Both
// methods are best-effort: a miss or a failed put just means the identity
// store is consulted.
type SessionCache interface {
	Get(ctx context.Context, token string) (*domain.Identity, bool)
	Put(ctx context.Context, token string, identity *domain.Identity)
}

// Auth extracts the bearer token, exchanges it for a caller identity via the
// identity store, and injects the identity into the request context. cache
// may be nil.
func Auth(store ports.IdentityStore, cache SessionCache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := parts[1]

			ctx := c.Request().Context()

			if cache != nil {
				if identity, ok := cache.Get(ctx, token); ok {
					metrics.SessionCacheTotal.WithLabelValues("hit").Inc()
					c.Set(identityKey, identity)
					return next(c)
				}
				metrics.SessionCacheTotal.WithLabelValues("miss").Inc()
			}

			identity, err := store.ValidateSession(ctx, token)
			if err != nil || identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if cache != nil {
				cache.Put(ctx, token, identity)
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// CallerIdentity returns the identity injected by Auth, or nil when the
// middleware did not run.
func CallerIdentity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}
