package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger zerolog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("encode JSON response")
	}
}

// WriteMessage writes {"error": message}.
func WriteMessage(logger zerolog.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, map[string]string{"error": message})
}

// WriteError maps application errors onto status codes. Unexpected errors are
// logged and hidden from the client.
func WriteError(logger zerolog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		WriteMessage(logger, w, http.StatusGatewayTimeout, "request timed out")
		return
	case errors.Is(err, context.Canceled):
		WriteMessage(logger, w, http.StatusServiceUnavailable, "request canceled")
		return
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	}
	WriteMessage(logger, w, status, apperrors.PublicMessage(err))
}

// DecodeJSON reads a single JSON object from the body.
func DecodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.NewValidationErrorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return apperrors.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("request body must contain a single JSON object")
	}
	return nil
}
