package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numcheck/internal/platform/logger"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/testutil"
)

func TestWriteErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message any
	}{
		{"validation carries its message", dErrors.New(dErrors.CodeValidation, "Error reading the file."), http.StatusBadRequest, "validation_error", "Error reading the file."},
		{"unauthorized", dErrors.New(dErrors.CodeUnauthorized, "Invalid username or password."), http.StatusUnauthorized, "unauthorized", "Invalid username or password."},
		{"session not ready", dErrors.New(dErrors.CodeUnavailable, "Messaging session is not ready."), http.StatusServiceUnavailable, "unavailable", "Messaging session is not ready."},
		{"conflict", dErrors.New(dErrors.CodeConflict, "busy"), http.StatusConflict, "conflict", "busy"},
		{"internal hides its message", dErrors.New(dErrors.CodeInternal, "pq: relation missing"), http.StatusInternalServerError, "internal_error", nil},
		{"uncoded error is internal", http.ErrHandlerTimeout, http.StatusInternalServerError, "internal_error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			testutil.AssertStatusAndError(t, rr, tt.status, tt.code)
			body := testutil.UnmarshalErrorResponse(t, rr)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		IDs []int `json:"ids"`
	}

	t.Run("decodes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(`{"ids":[1,2]}`))
		got, ok := DecodeJSON[payload](rr, req, logger.Discard(), req.Context(), "req-1")
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, got.IDs)
	})

	t.Run("empty body is a bad request", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/delete", http.NoBody)
		_, ok := DecodeJSON[payload](rr, req, logger.Discard(), req.Context(), "req-2")
		assert.False(t, ok)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}
