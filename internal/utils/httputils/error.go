package httputils

import (
	"net/http"

	"github.com/Laisky/errors/v2"
)

type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func BadRequest(message string) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: message}
}

// HandleError writes err as a JSON error. Errors that do not wrap an
// HTTPError become a 500 without leaking their text.
func HandleError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		_ = JSONError(w, httpErr.Code, httpErr.Message)
	} else {
		_ = JSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
