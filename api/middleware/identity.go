package middleware

import (
	"net/http"
	"strings"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

const (
	userUPNHeader  = "X-User-Upn"
	userRoleHeader = "X-User-Role"
)

// Identity reads the principal claims the upstream gateway attaches to each
// request. The headers are trusted as-is; this service performs no token
// verification of its own.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			upn := strings.TrimSpace(r.Header.Get(userUPNHeader))
			if upn == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity"))
				return
			}
			role := strings.TrimSpace(r.Header.Get(userRoleHeader))

			ctx := WithUserUPN(r.Context(), upn)
			ctx = WithRole(ctx, role)
			if logg != nil {
				ctx = logg.WithUserUPN(ctx, upn)
				if role != "" {
					ctx = logg.WithActorRole(ctx, role)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
