package middleware

import (
	"net/http"
	"strings"

	"estatehub/pkg/auth"
	apperrors "estatehub/pkg/errors"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAdmin guards a single route. Valid claims are stored on the request context.
func RequireAdmin(tokens TokenParser, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Missing bearer token"))
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				log.Warn("Rejected admin token",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Invalid or expired token"))
				return
			}
			if claims.Role != auth.RoleAdmin {
				_ = httputil.WriteError(w, apperrors.Forbidden("Admin role required"))
				return
			}

			next(w, r.WithContext(auth.WithClaims(r.Context(), claims)), ps)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
