package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/browser"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/session"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// requestError is a malformed or incomplete request body
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func invalidRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return invalidRequest("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, models.NewError(code, message))
}

// fail maps an error to its documented status and error code
func fail(w http.ResponseWriter, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", reqErr.msg)
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
	case errors.Is(err, session.ErrSessionNotActive):
		writeError(w, http.StatusBadRequest, "SESSION_NOT_ACTIVE", "Session is not active")
	case errors.Is(err, session.ErrInvalidTimeout):
		writeError(w, http.StatusBadRequest, "INVALID_TIMEOUT", err.Error())
	case errors.Is(err, session.ErrSessionLimit):
		writeError(w, http.StatusInternalServerError, "SESSION_LIMIT", err.Error())
	case errors.Is(err, browser.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, "INVALID_URL", err.Error())
	case errors.Is(err, browser.ErrElementNotFound):
		writeError(w, http.StatusBadRequest, "ELEMENT_NOT_FOUND", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
