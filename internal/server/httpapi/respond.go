package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/devanshyadav01/sweetshop/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeServiceError maps service-layer errors onto the HTTP taxonomy:
// validation 400, authentication 401, authorization 403, unknown identity
// 404, stock shortfall 400 with the shortfall values, anything else 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var ve *errs.ValidationError
	var iq *errs.InsufficientQuantityError
	switch {
	case errors.As(err, &iq):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "Insufficient quantity",
			"available": iq.Available,
			"requested": iq.Requested,
		})
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, errs.ErrForbidden):
		writeError(w, http.StatusForbidden, "Admin access required")
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "Sweet not found")
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
	default:
		s.log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
