package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

type contextKey string

const viewerKey contextKey = "viewer"

// SetViewer returns a context with the viewer identity set. Used by auth middleware.
func SetViewer(ctx context.Context, v domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFromContext returns the authenticated viewer from the context, if present.
func ViewerFromContext(ctx context.Context) (domain.Viewer, bool) {
	v, ok := ctx.Value(viewerKey).(domain.Viewer)
	return v, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the viewer in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			viewer, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetViewer(r.Context(), viewer))
			next(w, r)
		}
	}
}
