package rest

import (
	"context"
	"net/http"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// The token is the caller's opaque user id, passed in the x-auth-token
// header. The user directory resolves it or the request is rejected.
const authTokenHeader = "x-auth-token" //nolint:gosec // header name, not a credential

type contextKey string

const userContextKey contextKey = "user"

// requireAuth - resolves the token to a user and stores it in the request
// context; rejects the request otherwise.
func (that *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(authTokenHeader)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "No token detected, authorization denied")
			return
		}

		user, err := that.users.GetByID(r.Context(), token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// optionalAuth - like requireAuth, but an absent or unresolvable token leaves
// the request anonymous instead of rejecting it.
func (that *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(authTokenHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := that.users.GetByID(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func withUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func userFrom(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userContextKey).(*entity.User)
	return user
}
