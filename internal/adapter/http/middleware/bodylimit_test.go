package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoBody(c *gin.Context) {
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "cut off")
		return
	}
	c.String(http.StatusOK, string(b))
}

func TestMaxBodySize(t *testing.T) {
	tests := []struct {
		name   string
		limit  int64
		body   string
		status int
	}{
		{"under limit", 1024, `{"amount":"10"}`, http.StatusOK},
		{"exact limit", 5, "12345", http.StatusOK},
		{"over limit", 16, strings.Repeat("A", 100), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(MaxBodySize(tt.limit))
			r.POST("/test", echoBody)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(tt.body)))
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.Equal(t, apperror.CodePayloadTooLarge, decodeError(t, w).ErrorCode)
			}
		})
	}
}

func TestMaxBodySize_UnknownLengthIsCutOff(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(16))
	r.POST("/test", echoBody)

	req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader(strings.Repeat("A", 100))))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cut off", w.Body.String())
}

func TestMaxBodySize_NoBody(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(8))
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
