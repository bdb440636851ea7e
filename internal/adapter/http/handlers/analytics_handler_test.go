package handlers

import (
	"net/http"
	"testing"
	"time"

	"ritual_desk/internal/adapter/http/handlers/mocks"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/domain/entities"
	"ritual_desk/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestAnalyticsHandler_Summary(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		days     int
		err      error
		code     int
		callsUse bool
	}{
		{name: "default window", query: "", days: 0, code: http.StatusOK, callsUse: true},
		{name: "explicit window", query: "?days=7", days: 7, code: http.StatusOK, callsUse: true},
		{name: "non numeric", query: "?days=week", code: http.StatusBadRequest},
		{name: "out of range", query: "?days=999", days: 999, err: usecase.ErrInvalidWindow, code: http.StatusBadRequest, callsUse: true},
		{name: "storage failure", query: "?days=30", days: 30, err: entities.ErrStorage, code: http.StatusInternalServerError, callsUse: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIAnalyticsUseCase(ctrl)
			h := NewAnalyticsHandler(uc)
			r := newRouter("a-1", middleware.RoleAdmin)
			r.GET("/v1/admin/analytics", h.Summary)

			if tc.callsUse {
				uc.EXPECT().Summary(gomock.Any(), tc.days).
					Return(entities.AnalyticsSummary{WindowDays: 30, Since: time.Now().UTC()}, tc.err)
			}

			w := serve(r, http.MethodGet, "/v1/admin/analytics"+tc.query, "")
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
		})
	}
}
