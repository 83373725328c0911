package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"payslip-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return r
}

func TestRequestID(t *testing.T) {
	t.Run("Honors Valid Inbound ID", func(t *testing.T) {
		rid := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", rid)
		w := httptest.NewRecorder()

		requestIDRouter().ServeHTTP(w, req)

		assert.Equal(t, rid, w.Header().Get("X-Request-ID"))
		assert.Equal(t, rid, w.Body.String())
	})

	t.Run("Replaces Invalid Inbound ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid; rm -rf /")
		w := httptest.NewRecorder()

		requestIDRouter().ServeHTTP(w, req)

		echoed := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid; rm -rf /", echoed)
	})

	t.Run("Generates When Absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		requestIDRouter().ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
		assert.NoError(t, err)
	})
}
