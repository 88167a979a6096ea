package helpers

import (
	"context"

	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/models"
)

type contextKey string

const (
	contextKeyUser   contextKey = "auth_user"
	contextKeyClaims contextKey = "auth_claims"
)

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserFromContext returns the authenticated user attached by the auth
// middleware, or nil on unauthenticated requests.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(contextKeyUser).(*models.User)
	return u
}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, contextKeyClaims, claims)
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(contextKeyClaims).(*auth.Claims)
	return c
}
