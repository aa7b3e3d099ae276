package httputils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/Laisky/errors/v2"

	"github.com/wgomg/notesift/internal/utils"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 8 << 20

var errBodyTooLarge = &HTTPError{
	Code:    http.StatusRequestEntityTooLarge,
	Message: "Request body too large",
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func DecodeJSON(r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return &HTTPError{
			Code:    http.StatusUnsupportedMediaType,
			Message: "Content-Type must be application/json",
		}
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if tooLarge(err) {
			return errBodyTooLarge
		}
		return &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid JSON payload: " + err.Error(),
		}
	}
	return nil
}

// LogRequestBody reads the body, logs it when raw body logging is on, and
// restores it for the next reader.
func LogRequestBody(r *http.Request, logger *utils.Logger, reqID string) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		if tooLarge(err) {
			return nil, errBodyTooLarge
		}
		return nil, errors.Wrap(err, "read request body")
	}

	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if logger.RawBodyLog {
		logger.Debug(&reqID, "Raw request body: %s", utils.Preview(string(bodyBytes), 2000))
	}

	return bodyBytes, nil
}
