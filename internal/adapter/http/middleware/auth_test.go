package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ritual_desk/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "s3cret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newAuthRouter(opts AuthOptions) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()), JWTAuth(opts))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": ActorID(c), "admin": IsAdmin(c)})
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
		path   string
		code   int
	}{
		{name: "missing header", path: "/me", code: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", path: "/me", code: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", path: "/me", code: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u-1", "exp": exp}), path: "/me", code: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(-time.Hour).Unix()}), path: "/me", code: http.StatusUnauthorized},
		{name: "missing subject", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": exp}), path: "/me", code: http.StatusUnauthorized},
		{name: "client ok", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u-1", "exp": exp}), path: "/me", code: http.StatusOK},
		{name: "client on admin route", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u-1", "role": "client", "exp": exp}), path: "/admin", code: http.StatusForbidden},
		{name: "admin on admin route", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "a-1", "role": "ADMIN", "exp": exp}), path: "/admin", code: http.StatusNoContent},
	}

	r := newAuthRouter(AuthOptions{Secret: testSecret})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d (%s)", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestJWTAuth_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newAuthRouter(AuthOptions{Disabled: true})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected default local admin, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(HeaderActorID, "u-7")
	req.Header.Set(HeaderActorRole, RoleClient)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client header, got %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
