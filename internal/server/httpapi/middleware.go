package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// requireAuth is the authorization gate: the single place where request
// identity is established. It resolves the bearer token to a user identifier
// and stores it in the request context; downstream handlers read it with
// ownerFromRequest. Store-level queries still repeat the owner predicate on
// every task operation.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.respondError(w, r, common.ErrMissingToken)
			return
		}

		// A header that is present but not "Bearer <token>" is bad
		// credentials, not absent ones.
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.respondError(w, r, common.ErrInvalidToken)
			return
		}

		userID, err := s.users.ValidateToken(parts[1])
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// ownerFromRequest returns the user identifier attached by requireAuth.
func ownerFromRequest(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
