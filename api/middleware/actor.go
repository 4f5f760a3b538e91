package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	headerActorUserID = "X-Actor-User-Id"
	headerActorRole   = "X-Actor-Role"
	headerVendorStore = "X-Vendor-Store-Id"
)

// ActorContext lifts the gateway-supplied actor headers into the request
// context. Malformed identifiers are dropped rather than rejected; handlers
// that require an actor enforce it themselves.
func ActorContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := strings.TrimSpace(r.Header.Get(headerActorUserID)); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					ctx = WithUserID(ctx, id.String())
				}
			}
			if role := strings.ToLower(strings.TrimSpace(r.Header.Get(headerActorRole))); role != "" {
				ctx = WithRole(ctx, role)
			}
			if raw := strings.TrimSpace(r.Header.Get(headerVendorStore)); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					ctx = WithStoreID(ctx, id.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
