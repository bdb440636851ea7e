package handlers

import (
	"bytes"
	"io"
	"net/http/httptest"

	"ritual_desk/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func asActor(id, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetActor(c, id, role)
		c.Next()
	}
}

func newRouter(id, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asActor(id, role))
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
