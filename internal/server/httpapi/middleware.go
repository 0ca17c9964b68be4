package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/akolosov/fincoach/internal/server/auth"
)

type ctxKey int

const userIDKey ctxKey = iota

// userIDFrom returns the authenticated user id stored by the auth
// middleware.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// withAuth guards protected routes. A missing Authorization header is a
// distinct condition (403) from a present but unverifiable token (401).
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusForbidden, "No token provided")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}
