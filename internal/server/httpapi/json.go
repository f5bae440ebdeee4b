package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

// decodeJSON reads a single JSON value into dst, rejecting unknown fields and
// trailing garbage. Any decode failure surfaces as a validation error so the
// caller's input never reaches domain logic half-parsed.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &common.ValidationError{Fields: map[string]string{"body": "must be a valid JSON object"}}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return &common.ValidationError{Fields: map[string]string{"body": "must contain a single JSON object"}}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"error": msg})
}

// respondError maps domain errors to the HTTP taxonomy. Anything unmapped is
// logged server-side and surfaced as a generic 500; internal detail never
// reaches the caller.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, common.ErrorInvalidID):
		writeError(w, http.StatusBadRequest, "invalid task id")
	case errors.Is(err, common.ErrMissingToken):
		writeError(w, http.StatusUnauthorized, "missing credentials")
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid or expired credentials")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrorEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	default:
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
