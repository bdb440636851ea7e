package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ritual_desk/internal/adapter/http/handlers"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/adapter/persistence/repository/memory"
	"ritual_desk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, auth middleware.AuthOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	quoteRepo := memory.NewPriceQuoteRepository()
	requestRepo := memory.NewServiceRequestRepository()
	paymentRepo := memory.NewPaymentIntentRepository()

	quotes := usecase.NewQuoteUseCase(quoteRepo, nil, nil, usecase.QuoteUseCaseOptions{DefaultCurrency: "USD", DefaultValidDays: 7})
	requests := usecase.NewServiceRequestUseCase(requestRepo, quoteRepo, nil, nil)
	payments := usecase.NewPaymentUseCase(paymentRepo, requestRepo, quoteRepo, requests, nil, usecase.PaymentUseCaseOptions{Mock: true}, nil)
	analytics := usecase.NewAnalyticsUseCase(requestRepo, nil, 0, nil)

	return NewRouter(Handlers{
		Quotes:    handlers.NewQuoteHandler(quotes),
		Requests:  handlers.NewServiceRequestHandler(requests, quotes),
		Payments:  handlers.NewPaymentHandler(payments, requests, true, nil),
		Analytics: handlers.NewAnalyticsHandler(analytics),
	}, Options{Auth: auth, CorsAllowedOrigins: []string{"http://localhost:3000"}})
}

// call sends a request as actor/role through the X-Actor headers read when
// auth is disabled.
func call(r *gin.Engine, method, path, actor, role, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != "" {
		req.Header.Set(middleware.HeaderActorID, actor)
		req.Header.Set(middleware.HeaderActorRole, role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestRouter_Ping(t *testing.T) {
	r := newTestRouter(t, middleware.AuthOptions{Secret: "s3cret"})

	w := call(r, http.MethodGet, "/v1/ping", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRouter_Guards(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		r := newTestRouter(t, middleware.AuthOptions{Secret: "s3cret"})
		w := call(r, http.MethodGet, "/v1/quotes/mine", "", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("client on admin route", func(t *testing.T) {
		r := newTestRouter(t, middleware.AuthOptions{Disabled: true})
		w := call(r, http.MethodGet, "/v1/admin/requests", "u-1", middleware.RoleClient, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin on admin route", func(t *testing.T) {
		r := newTestRouter(t, middleware.AuthOptions{Disabled: true})
		w := call(r, http.MethodGet, "/v1/admin/requests", "a-1", middleware.RoleAdmin, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_QuoteToPaidRequest(t *testing.T) {
	r := newTestRouter(t, middleware.AuthOptions{Disabled: true})
	const admin, client = "a-1", "u-1"

	w := call(r, http.MethodPost, "/v1/admin/quotes", admin, middleware.RoleAdmin,
		`{"user_id":"u-1","service_id":"tarot_reading","quoted_price":4500}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	quoteID := decode(t, w)["quote_id"].(string)

	w = call(r, http.MethodGet, "/v1/quotes/active?service_id=tarot_reading", client, middleware.RoleClient, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, quoteID, decode(t, w)["quote_id"])

	// another client cannot see or accept it
	w = call(r, http.MethodPost, "/v1/quotes/"+quoteID+"/accept", "u-2", middleware.RoleClient, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodPost, "/v1/quotes/"+quoteID+"/accept", client, middleware.RoleClient, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["accepted"])

	w = call(r, http.MethodPost, "/v1/quotes/"+quoteID+"/reject", client, middleware.RoleClient, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/v1/quotes/"+quoteID+"/requests", client, middleware.RoleClient, `{"description":"three card spread"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	requestID := decode(t, w)["request_id"].(string)

	w = call(r, http.MethodPost, "/v1/requests/"+requestID+"/payments", client, middleware.RoleClient, `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", decode(t, w)["status"])

	w = call(r, http.MethodPatch, "/v1/admin/requests/"+requestID+"/status", admin, middleware.RoleAdmin, `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodPatch, "/v1/admin/requests/"+requestID+"/status", admin, middleware.RoleAdmin, `{"status":"pending"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/v1/admin/requests/"+requestID+"/steps", admin, middleware.RoleAdmin, `{"step_name":"Shuffle"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(r, http.MethodPatch, "/v1/admin/requests/"+requestID+"/steps/1/toggle", admin, middleware.RoleAdmin, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/v1/requests/"+requestID, client, middleware.RoleClient, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "in_progress", body["status"])
	assert.Equal(t, float64(4500), body["amount_paid"])
	assert.Equal(t, float64(100), body["completion_percentage"])
	assert.NotContains(t, body, "status_history")

	w = call(r, http.MethodGet, "/v1/requests/"+requestID, "u-2", middleware.RoleClient, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodGet, "/v1/admin/analytics?days=7", admin, middleware.RoleAdmin, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decode(t, w)["total_requests"])
}
