package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/service"
	"github.com/devgear/devgear-go/internal/session"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	userKey    contextKey = "user"
)

// SessionLoader decodes the session cookie on every request and, when the
// session names a user, hydrates it from the repository. A failed lookup is
// logged and the request proceeds anonymously; a page never fails because the
// visitor could not be resolved.
func SessionLoader(store *session.Store, auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)
			ctx := context.WithValue(r.Context(), sessionKey, sess)

			if userID := sess.Get(session.KeyUserID); userID != "" {
				user, err := auth.GetUser(ctx, userID)
				if err != nil {
					slog.Warn("session user lookup failed — continuing anonymous", "error", err)
				} else {
					ctx = context.WithValue(ctx, userKey, user)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the request's decoded session. SessionLoader
// always installs one; the fallback empty session only covers handlers tested
// without the middleware.
func SessionFromContext(ctx context.Context) *session.Session {
	if s, ok := ctx.Value(sessionKey).(*session.Session); ok {
		return s
	}
	return session.New()
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}
