package httpapi

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

type ctxKey struct{}

// userKey holds the authenticated account in the request context.
var userKey ctxKey

// authUser is the caller identity attached to authenticated requests.
type authUser struct {
	ID      int64
	Email   string
	IsAdmin bool
}

// userFromContext returns the authenticated caller, if any.
func userFromContext(ctx context.Context) (*authUser, bool) {
	u, ok := ctx.Value(userKey).(*authUser)
	return u, ok
}

// authenticate verifies the bearer token and confirms the account still
// exists before classifying the caller as authenticated.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := s.verifier.Verify(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		u, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, &authUser{
			ID:      u.ID,
			Email:   u.Email,
			IsAdmin: u.IsAdmin,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates administrator-only operations. Runs after authenticate.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := userFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !u.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
		if t := strings.TrimSpace(v[7:]); t != "" {
			return t, true
		}
	}
	return "", false
}

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := ""
		if id, err := uuid.NewV4(); err == nil {
			reqID = id.String()
		}
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("http",
			zap.String("reqID", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// recoverer turns handler panics into 500 responses.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic",
					zap.Any("reason", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
