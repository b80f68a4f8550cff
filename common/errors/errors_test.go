package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsIdentityAndCause(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")

	err := ErrStorageUnavailable.Wrap(cause)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrStorageCorrupt)
	assert.Equal(t, "Storage unavailable: dial tcp: connection refused", err.Error())
	assert.Nil(t, ErrStorageUnavailable.Err)
}

func TestFrom(t *testing.T) {
	assert.Same(t, ErrEmptyCart, From(ErrEmptyCart))

	wrapped := From(stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, wrapped.Code)
	assert.Equal(t, "Internal server error", wrapped.Message)
}

func TestErrorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(ErrProductNotFound) })
	r.GET("/internal", func(c *gin.Context) { _ = c.Error(stderrors.New("boom")) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(ErrProductNotFound)
		c.Status(http.StatusTeapot)
		c.Writer.WriteHeaderNow()
	})

	cases := []struct {
		path string
		code int
		body string
	}{
		{"/missing", http.StatusNotFound, `{"code":404,"message":"Product not found"}`},
		{"/internal", http.StatusInternalServerError, `{"code":500,"message":"Internal server error"}`},
	}
	for _, tc := range cases {
		req, _ := http.NewRequest(http.MethodGet, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, tc.path)
		assert.JSONEq(t, tc.body, w.Body.String(), tc.path)
	}

	req, _ := http.NewRequest(http.MethodGet, "/written", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
