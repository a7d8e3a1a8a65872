package middleware

import (
	"context"
	"net/http"

	"landa-be/internal/auth"
	"landa-be/internal/transport"
	"landa-be/internal/user"
	"landa-be/internal/utils"
)

// BlockChecker reports whether an authenticated user has been blocked by an
// admin. Satisfied by user.Service.
type BlockChecker interface {
	IsBlocked(ctx context.Context, userID int64) (bool, error)
}

// Authentication parses the session token (cookie first, Authorization
// header fallback) and, when valid, loads the user identity into the request
// context. Requests without a valid token pass through unauthenticated;
// RequireAuth gates the protected routes.
func Authentication(secret string, blocks BlockChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := user.ParseJWT(tokenStr, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if blocks != nil {
				blocked, err := blocks.IsBlocked(r.Context(), claims.UserID)
				if err != nil || blocked {
					transport.Error(w, http.StatusForbidden, "account is blocked")
					return
				}
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			transport.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects authenticated users whose role is not in allowed.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				transport.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			role := utils.GetUserRoleFromContext(r.Context())
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			transport.Error(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}
