package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	obsmw "gpstrack/internal/observability/middleware"
	"gpstrack/internal/service"

	"github.com/google/uuid"
)

type principalKey struct{}

// RequireAuth validates the bearer credential and resolves it to a live
// principal before any resource handler runs. Requests without a valid
// token, or carrying a token for a user that no longer exists, never reach
// business logic.
func RequireAuth(tokens service.TokenService, auth service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := obsmw.RequestIDFromContext(r.Context())

			raw := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				slog.Warn("missing bearer token", "path", r.URL.Path, "request_id", reqID)
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			tokStr := strings.TrimSpace(raw[len("Bearer "):])

			userID, err := tokens.Authenticate(r.Context(), tokStr)
			if err != nil {
				slog.Warn("invalid bearer token", "path", r.URL.Path, "request_id", reqID)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if _, err := auth.ResolvePrincipal(r.Context(), userID); err != nil {
				slog.Warn("token subject no longer exists", "path", r.URL.Path, "request_id", reqID)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func principalFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalKey{}).(uuid.UUID)
	return id, ok
}
