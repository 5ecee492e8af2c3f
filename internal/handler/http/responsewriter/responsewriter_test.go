package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
	assert.False(t, w.Committed())
}

func TestWrap_Idempotent(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Same(t, w, Wrap(w))
}

func TestWriteHeader_FirstWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusUnprocessableEntity)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusUnprocessableEntity, w.StatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.True(t, w.Committed())
}

func TestWrite_CountsBytesAndImplies200(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte(`{"ok":true}`))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 11, n)
	assert.Equal(t, 12, w.BytesWritten())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, `{"ok":true}`+"\n", rec.Body.String())
}

func TestFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	w.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, w.Committed())
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, rec, Wrap(rec).Unwrap())
}
