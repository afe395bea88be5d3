package response

import (
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pagekeep/pagekeep-server/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "test", result["message"])
}

func TestSuccessAndCreated(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"status": "ok"}, discardLogger())
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	Created(w, map[string]string{"id": "book-1"}, discardLogger())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, apperrors.CodeNotFound, "book not found", discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error)
	assert.Equal(t, "book not found", envelope.Message)
	assert.Nil(t, envelope.Details)
}

func TestErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()

	details := map[string]string{"title": "is required"}
	ErrorWithDetails(w, apperrors.CodeValidation, "validation failed", details, discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Error)
	assert.NotNil(t, envelope.Details)
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, apperrors.Conflict("email already registered"), discardLogger())

	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Error)
	assert.Equal(t, "email already registered", envelope.Message)
}

func TestHandleError_WrappedDomainError(t *testing.T) {
	w := httptest.NewRecorder()

	wrapped := apperrors.NotFound("note not found").WithCause(errors.New("badger: key not found"))
	HandleError(w, wrapped, discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)

	// The cause never leaks into the response body.
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "note not found", envelope.Message)
	assert.NotContains(t, w.Body.String(), "badger")
}

func TestHandleError_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, errors.New("disk exploded"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "INTERNAL", envelope.Error)
	assert.Equal(t, "internal server error", envelope.Message)
	assert.NotContains(t, w.Body.String(), "disk exploded")
}
