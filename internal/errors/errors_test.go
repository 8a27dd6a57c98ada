package errors

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorInterface(t *testing.T) {
	err := New(http.StatusNotFound, "DATASET_NOT_FOUND", "Dataset file not found")
	assert.Equal(t, "Dataset file not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("file", "is required")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "file", details.Field)
}

func TestDatasetNotFoundError(t *testing.T) {
	err := DatasetNotFoundError("estat_tran_hv_frmod.csv")
	assert.Contains(t, err.Message, "estat_tran_hv_frmod.csv")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestHandleErrorAPIError(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/datasets/x", nil)
	handler.HandleError(w, r, MalformedDatasetError(fmt.Errorf("period label %q", "TOTAL")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
	assert.Contains(t, w.Body.String(), TypeDataset)
}

func TestHandleErrorUnknown(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	handler.HandleError(w, r, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom", "internal details are not leaked")
}

func TestHandleErrorTimeout(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	handler.HandleError(w, r, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestHandleErrorNil(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.HandleError(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
