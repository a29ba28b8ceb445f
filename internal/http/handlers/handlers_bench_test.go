package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/testutil"
)

func BenchmarkActivityByName(b *testing.B) {
	h := newTestHandler(nil, map[activity.Activity]records.Record{
		activity.Baseball: testutil.SampleRecord(activity.Baseball),
	}, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.ActivityByName(rr, activityRequest(http.MethodGet, "/activities/baseball", "baseball"))
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}

func BenchmarkSeason(b *testing.B) {
	h := newTestHandler(nil, nil, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.Season(rr, httptest.NewRequest(http.MethodGet, "/season", nil))
	}
}
