package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/meridian-legal/insights-backend/internal/api/httpx"
	"github.com/meridian-legal/insights-backend/internal/auth"
	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
)

type principalKey struct{}

// Principal returns the admin the auth guard attached to the request.
func Principal(ctx context.Context) (models.Admin, bool) {
	a, ok := ctx.Value(principalKey{}).(models.Admin)
	return a, ok
}

type AuthGuard struct {
	tm     *auth.TokenManager
	admins repo.Admins
}

func NewAuthGuard(tm *auth.TokenManager, admins repo.Admins) *AuthGuard {
	return &AuthGuard{tm: tm, admins: admins}
}

// notAuthorized is the single rejection used for every failure mode:
// missing header, malformed or expired token, bad signature, or a principal
// that no longer exists. Callers cannot tell which check failed.
func notAuthorized(w http.ResponseWriter) {
	httpx.Fail(w, http.StatusUnauthorized, "not authorized")
}

func (g *AuthGuard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			notAuthorized(w)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := g.tm.Parse(token)
		if err != nil {
			notAuthorized(w)
			return
		}
		id, err := claims.AdminID()
		if err != nil {
			notAuthorized(w)
			return
		}
		admin, err := g.admins.GetByID(r.Context(), id)
		if err != nil {
			notAuthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
