package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/config"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Endpoints reachable without a session: account creation, sign-in, and the
// Google code flow (which establishes the session).
var publicPaths = []string{
	"/api/auth/signup",
	"/api/auth/signin",
	"/api/auth/google/login",
	"/api/auth/google/callback",
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the bearer token into the current user for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if isPublic(req.URL.Path) || !strings.HasPrefix(req.URL.Path, "/api/") {
				next.ServeHTTP(w, req)
				return
			}

			token := bearerToken(req)
			if token == "" {
				rest.WriteError(w, rest.ErrUnauthenticated)
				return
			}

			claims, err := deps.TokenManager.Validate(token)
			if err != nil {
				log.Debugf("rejected session token: %v", err)
				rest.WriteError(w, rest.ErrUnauthenticated)
				return
			}

			u, err := deps.UserService.GetUserByUid(req.Context(), claims.UserUid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", claims.UserUid)
					rest.WriteError(w, rest.ErrUnauthenticated)
					return
				}
				log.Errorf("failed to get user: %v", err)
				rest.WriteError(w, err)
				return
			}

			ctx := user.WithUser(req.Context(), u)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// EventSource cannot set headers, so the stream endpoint accepts the
	// token as a query parameter.
	return req.URL.Query().Get("token")
}
