package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
)

const (
	headerOpenID    = "X-Open-Id"
	headerUserName  = "X-User-Name"
	headerUserEmail = "X-User-Email"
)

type ctxKey int

const userKey ctxKey = iota

// identityMiddleware resolves the caller from the identity headers, creating the user on
// first sight. Requests without a header act as the dev user.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		openID := strings.TrimSpace(r.Header.Get(headerOpenID))
		if openID == "" {
			openID = repository.DevUserOpenID
		}
		user, created, err := s.users.Ensure(r.Context(), openID,
			headerValue(r, headerUserName), headerValue(r, headerUserEmail))
		if err != nil {
			s.internalError(w, err)
			return
		}
		if created {
			s.log.Info("user created", "open_id", openID, "user_id", user.ID)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != models.RoleAdmin {
			s.writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

func headerValue(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.Header.Get(name))
	if v == "" {
		return nil
	}
	return &v
}
