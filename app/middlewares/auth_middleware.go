package middlewares

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

// tokenFromRequest pulls the JWT out of the Authorization header or the jwt
// cookie; the header wins when both are present.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(helpers.JWTCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Authenticate verifies the request token, re-fetches the user to confirm it
// still exists and is active, and attaches both to the request context.
func Authenticate(rnd *render.Render, tokens *auth.TokenService, store repositories.Datastore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "No authentication token provided"})
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
				return
			}

			user, err := store.GetUser(r.Context(), userID)
			if err != nil {
				log.Printf("Authenticate: error loading user %d: %v", userID, err)
				_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Authentication error"})
				return
			}
			if user == nil || user.Status != models.UserStatusActive {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "User not found or inactive"})
				return
			}

			ctx := helpers.WithUser(r.Context(), user)
			ctx = helpers.WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identify attaches the user when a valid token is present but never rejects
// the request. Used on endpoints that accept guest traffic, like checkout.
func Identify(tokens *auth.TokenService, store repositories.Datastore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := tokenFromRequest(r); token != "" {
				if claims, err := tokens.Verify(token); err == nil {
					if userID, err := claims.UserID(); err == nil {
						if user, err := store.GetUser(r.Context(), userID); err == nil && user != nil && user.Status == models.UserStatusActive {
							ctx := helpers.WithUser(r.Context(), user)
							ctx = helpers.WithClaims(ctx, claims)
							r = r.WithContext(ctx)
						}
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole passes requests whose token carries one of the given roles.
// Must run after Authenticate.
func RequireRole(rnd *render.Render, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := helpers.ClaimsFromContext(r.Context())
			if claims == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
				return
			}
			if !claims.HasRole(roles...) {
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{
					"error": "Insufficient role permissions (" + strings.Join(roles, " or ") + " required)",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission passes requests whose token carries the given capability.
// Must run after Authenticate.
func RequirePermission(rnd *render.Render, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := helpers.ClaimsFromContext(r.Context())
			if claims == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
				return
			}
			if !claims.HasPermission(permission) {
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{
					"error": "Insufficient permissions (" + permission + " required)",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RefreshToken re-issues the cookie when the verified token is within 15
// minutes of expiry. Runs after Authenticate; does nothing otherwise.
func RefreshToken(tokens *auth.TokenService, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := helpers.ClaimsFromContext(r.Context())
			user := helpers.UserFromContext(r.Context())
			if claims != nil && user != nil && claims.ExpiresAt != nil {
				if time.Until(claims.ExpiresAt.Time) < 15*time.Minute {
					if fresh, err := tokens.Generate(user); err == nil {
						helpers.SetJWTCookie(w, fresh, tokens.ExpiresIn(), secure)
					} else {
						log.Printf("RefreshToken: failed to re-issue token for user %d: %v", user.ID, err)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
