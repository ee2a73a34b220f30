package middleware

import (
	"context"
	"net/http"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"
	"github.com/avdeyev/liblend/internal/logger"

	"github.com/go-chi/chi/v5"
)

// ClaimHeader carries the caller's asserted identity: a plain normalized
// email. The gate decides access from it; proving who the caller is belongs
// to the transport/identity layer.
const ClaimHeader = "X-User-Email"

// AccountResolver looks a claimed email up so the role policy can classify it.
type AccountResolver interface {
	Account(email string) (domain.Account, error)
}

// Key to store the caller's claim in the request context
type key int

const claimKey key = 0

// Gate guards privileged operations. On failure it short-circuits before the
// handler runs, so a rejected call never reaches storage.
type Gate struct {
	accounts AccountResolver
}

func NewGate(accounts AccountResolver) *Gate {
	return &Gate{accounts}
}

// RequireAdmin passes only when the claim resolves to an admin account.
// No claim is 401; a claim resolving to no account or to a non-admin account
// is 403. The response never reveals which of the two 403 cases occurred.
func (g *Gate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := claimedEmail(r)
			if email == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			account, err := g.accounts.Account(email)
			if err != nil {
				if !internal_errors.IsNotFound(err) {
					logger.Log.Error("account lookup failed in admin gate", "error", err)
					http.Error(w, "Authorization failed", http.StatusServiceUnavailable)
					return
				}
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}
			if account.Role != domain.RoleAdmin {
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), claimKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSelf passes only when the claim equals the path-designated email
// after normalization. Pure string comparison: no account lookup, so a
// failure leaks nothing about whether the target exists.
func (g *Gate) RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := claimedEmail(r)
			if email == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			target := domain.NormalizeEmail(chi.URLParam(r, param))
			if email != target {
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), claimKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimedEmail(r *http.Request) string {
	return domain.NormalizeEmail(r.Header.Get(ClaimHeader))
}

// ClaimFromContext returns the normalized claim email a passing gate stored,
// or "" when no gate ran.
func ClaimFromContext(r *http.Request) string {
	email, _ := r.Context().Value(claimKey).(string)
	return email
}
