package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/api/handlers"
)

// Identity headers set by the edge gateway after it validates the session.
// The service itself never sees credentials.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin  = "admin"
	RoleClient = "client"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth requires a valid X-User-ID header and stores the identity in the
// request context
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, "cabeçalho X-User-ID ausente")
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			handlers.RespondUnauthorized(w, "cabeçalho X-User-ID inválido")
			return
		}

		role := r.Header.Get(HeaderUserRole)
		if role != RoleAdmin {
			role = RoleClient
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose identity is not the studio admin.
// Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, "acesso restrito ao administrador")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID returns the authenticated user ID from the context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetUserRole returns the authenticated role from the context
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// IsAdmin reports whether the context identity is the studio admin
func IsAdmin(ctx context.Context) bool {
	role, ok := GetUserRole(ctx)
	return ok && role == RoleAdmin
}
