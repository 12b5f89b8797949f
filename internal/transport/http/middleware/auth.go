package middleware

import (
	"context"
	"net/http"
	"strings"

	"dayflow/internal/domain/auth"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// IdentityStore verifies that a token subject still refers to an active
// employee and yields its current role.
type IdentityStore interface {
	ActiveRole(ctx context.Context, empID string) (string, error)
}

// Auth resolves the bearer token into an Identity. Requests without a usable
// credential pass through unauthenticated; route guards reject them. The
// role comes from the store, not the token, so a role change or deactivation
// takes effect immediately.
func Auth(secret string, store IdentityStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			role, err := store.ActiveRole(r.Context(), claims.EmployeeID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyIdentity, auth.Identity{
				EmployeeID: claims.EmployeeID,
				Role:       role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(auth.Identity)
	return identity, ok
}
