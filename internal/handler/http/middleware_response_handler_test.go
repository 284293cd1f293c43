package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponseWriter(rr *httptest.ResponseRecorder) *responseWriter {
	return &responseWriter{ResponseWriter: rr}
}

// ---- WriteHeader ----

func TestResponseWriter_WriteHeader_SetsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.WriteHeader(http.StatusNoContent)

	assert.Equal(t, http.StatusNoContent, w.status)
	assert.True(t, w.wroteHeader)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestResponseWriter_WriteHeader_CalledTwice_IgnoresSecond(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.WriteHeader(http.StatusTooManyRequests)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusTooManyRequests, w.status)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

// ---- Write ----

func TestResponseWriter_Write_ImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	n, err := w.Write([]byte(`{"token":"t"}`))
	require.NoError(t, err)

	assert.Equal(t, 13, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_Write_AccumulatesSize(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("abc"))
	_, _ = w.Write([]byte("defg"))

	assert.Equal(t, 7, w.size)
	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, "abcdefg", rr.Body.String())
}
