package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestHandleError_ServiceError(t *testing.T) {
	h := HandleError(func(http.ResponseWriter, *http.Request) error {
		return apperrors.ResourceNotFoundError(errors.New("missing"), "transaction does not exist")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	got := decodeError(t, rec)
	assert.Equal(t, "transaction does not exist", got.ErrMsg)
	assert.Equal(t, http.StatusNotFound, got.ErrMsgCode)
}

func TestHandleError_UnknownError(t *testing.T) {
	h := HandleError(func(http.ResponseWriter, *http.Request) error {
		return errors.New("database is down")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Unexpected Service Error", decodeError(t, rec).ErrMsg)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)), &v))
	assert.Equal(t, 1, v.A)

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)), &v)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}
