package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/auth/jwt"
	"github.com/hidecraft/hidecraft-manager/internal/identity"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// SessionFromContext returns the customer session attached by WithSession or
// MaybeSession, nil when the request is anonymous.
func SessionFromContext(ctx context.Context) *identity.Session {
	s, _ := ctx.Value(sessionCtxKey).(*identity.Session)
	return s
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// WithAdmin admits only staff tokens.
func (s *Server) WithAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := jwt.VerifyTokenWithAudience(s.JwtAuth, bearerToken(r), jwt.AudienceAdmin)
		if err != nil {
			render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("invalid token")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession requires a customer session token and attaches the session.
func (s *Server) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.VerifyTokenWithAudience(s.JwtAuth, bearerToken(r), jwt.AudienceSession)
		if err != nil {
			render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("invalid token")))
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, &identity.Session{
			UserId: claims.Subject,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaybeSession attaches the session when a valid token is present and lets
// anonymous requests through. Public forms use it to link submissions to
// logged-in customers.
func (s *Server) MaybeSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := jwt.VerifyTokenWithAudience(s.JwtAuth, token, jwt.AudienceSession)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, &identity.Session{
			UserId: claims.Subject,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
