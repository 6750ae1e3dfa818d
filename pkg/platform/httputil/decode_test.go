package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

type cancelBody struct {
	DoctorID string `json:"doctorId"`
}

func TestDecodeJSON(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("successful decode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"doctorId":"doc-1"}`))
		w := httptest.NewRecorder()

		body, ok := DecodeJSON[cancelBody](w, req, logger, ctx, "req-1")

		require.True(t, ok)
		assert.Equal(t, "doc-1", body.DoctorID)
	})

	t.Run("malformed body writes 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"doctorId":`))
		w := httptest.NewRecorder()

		body, ok := DecodeJSON[cancelBody](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Nil(t, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "bad_request", resp.Error)
		assert.Equal(t, "invalid request body", resp.ErrorDescription)
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "Doctor with ID d-9 not found"), http.StatusNotFound, "not_found"},
		{"forbidden", dErrors.New(dErrors.CodeForbidden, "Supervisor is not authorized to verify this request"), http.StatusForbidden, "forbidden"},
		{"invalid state", dErrors.New(dErrors.CodeInvalidState, "Request status is Expired, cannot verify"), http.StatusConflict, "invalid_state"},
		{"validation", dErrors.New(dErrors.CodeValidation, "Validation failed"), http.StatusBadRequest, "validation_failed"},
		{"wrapped", fmt.Errorf("verify: %w", dErrors.New(dErrors.CodeNotFound, "gone")), http.StatusNotFound, "not_found"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Error)
		})
	}
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusForError(nil))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("x")))
	assert.Equal(t, http.StatusGatewayTimeout, StatusForError(dErrors.New(dErrors.CodeTimeout, "slow")))
}
