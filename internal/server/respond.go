package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/logging"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// apiError is the body of every non-2xx JSON response.
type apiError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// Error codes.
const (
	codeInvalidProfile = "invalid_profile"
	codeMissingGeodata = "missing_geodata"
	codeInvalidParams  = "invalid_params"
	codeBadRequest     = "bad_request"
	codeNotFound       = "not_found"
	codeInternal       = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Err(err).Msg("encoding response")
		http.Error(w, `{"error":{"code":"internal","message":"encoding response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Err(err).Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, status int, e apiError) {
	writeJSON(w, status, map[string]apiError{"error": e})
}

// classify maps a core error to its status code and wire error. Unknown
// errors become 500 and their message is not echoed.
func classify(err error) (int, apiError) {
	var fe *validation.FieldErrors
	switch {
	case errors.Is(err, validation.ErrInvalidProfile):
		return http.StatusBadRequest, apiError{Code: codeInvalidProfile, Message: err.Error()}
	case errors.Is(err, validation.ErrMissingGeodata):
		return http.StatusBadRequest, apiError{Code: codeMissingGeodata, Message: err.Error()}
	case errors.As(err, &fe):
		return http.StatusBadRequest, apiError{Code: codeInvalidParams, Message: err.Error(), Fields: fe.Errors}
	case errors.Is(err, validation.ErrNotFound):
		return http.StatusNotFound, apiError{Code: codeNotFound, Message: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, apiError{Code: codeInternal, Message: "request cancelled"}
	default:
		return http.StatusInternalServerError, apiError{Code: codeInternal, Message: "internal error"}
	}
}

func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, e := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, e)
}
