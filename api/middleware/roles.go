package middleware

import (
	"net/http"

	"github.com/angelmondragon/ssbcompass-backend/api/responses"
	pkgAuth "github.com/angelmondragon/ssbcompass-backend/pkg/auth"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
)

// RequireKind admits only principals of the given kind. It must run after Auth.
func RequireKind(kind enums.PrincipalKind, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := pkgAuth.Authorize(ClaimsFromContext(r.Context()), kind); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
