package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func TestWriteErrorMapsStatus(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.NewNotFoundError(apperrors.EntityClinic, "c1"), http.StatusNotFound, ""},
		{"wrapped validation", fmt.Errorf("upload media: %w", apperrors.NewValidationError("bad data")), http.StatusBadRequest, "bad data"},
		{"duplicate", apperrors.NewDuplicateEmailError("a@b.c"), http.StatusConflict, ""},
		{"auth", apperrors.NewAuthenticationFailedError("invalid credentials", nil), http.StatusUnauthorized, "invalid credentials"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(zerolog.Nop(), rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tc.message != "" {
				assert.Equal(t, tc.message, body["error"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Clinic"}`))
		var p payload
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, MaxJSONRequestBody, &p))
		assert.Equal(t, "Clinic", p.Name)
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		err := DecodeJSON(httptest.NewRecorder(), req, MaxJSONRequestBody, &p)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("trailing data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		var p payload
		err := DecodeJSON(httptest.NewRecorder(), req, MaxJSONRequestBody, &p)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("x", 64) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		err := DecodeJSON(httptest.NewRecorder(), req, 16, &p)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
