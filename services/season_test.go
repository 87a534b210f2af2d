package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/config"
	"github.com/oragh/platform-client/models"
)

func newTestService(t *testing.T, handler http.Handler) (*SeasonService, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := api.NewClient(config.Config{APIBaseURL: srv.URL, Timeout: 5 * time.Second}, api.NewMemoryTokenStore())
	return NewSeasonService(client), srv.Close
}

func TestSeasonFiltersOmitUnsetFields(t *testing.T) {
	var gotQuery url.Values
	service, done := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	defer done()

	_, err := service.List(context.Background(), SeasonFilters{Search: "2025", Page: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotQuery.Get("search") != "2025" {
		t.Fatalf("expected search param, got %q", gotQuery.Get("search"))
	}
	if gotQuery.Get("page") != "2" {
		t.Fatalf("expected page param, got %q", gotQuery.Get("page"))
	}
	if _, ok := gotQuery["active"]; ok {
		t.Fatalf("unset active filter must not be serialized")
	}
	if _, ok := gotQuery["page_size"]; ok {
		t.Fatalf("unset page_size filter must not be serialized")
	}
}

func TestSeasonFiltersSerializeFalseActive(t *testing.T) {
	var gotQuery url.Values
	service, done := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	defer done()

	active := false
	if _, err := service.List(context.Background(), SeasonFilters{Active: &active}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotQuery.Get("active") != "false" {
		t.Fatalf("explicit false must be serialized, got %q", gotQuery.Get("active"))
	}
}

func TestGridFilterOmitsMonth(t *testing.T) {
	var gotQuery url.Values
	service, done := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"season":{},"events":[],"attendance_grid":[]}`))
	}))
	defer done()

	_, err := service.AttendanceGrid(context.Background(), 3, GridFilters{EventType: "concert"})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if gotQuery.Get("event_type") != "concert" {
		t.Fatalf("expected event_type=concert, got %q", gotQuery.Get("event_type"))
	}
	if _, ok := gotQuery["month"]; ok {
		t.Fatalf("unset month must not be serialized")
	}
}

func TestSeasonEventsUseTypeParam(t *testing.T) {
	var gotQuery url.Values
	service, done := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer done()

	_, err := service.Events(context.Background(), 3, GridFilters{EventType: "rehearsal", Month: 5})
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if gotQuery.Get("type") != "rehearsal" {
		t.Fatalf("season events filter uses the type param, got %q", gotQuery.Get("type"))
	}
	if gotQuery.Get("month") != "5" {
		t.Fatalf("expected month=5, got %q", gotQuery.Get("month"))
	}
}

func TestCreateSeasonPresenceChecks(t *testing.T) {
	service, done := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not reach the backend on local validation failure")
	}))
	defer done()

	_, err := service.Create(context.Background(), models.SeasonCreateRequest{Name: "2025/2026"})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if apiErr.Field("start_date") == "" || apiErr.Field("end_date") == "" {
		t.Fatalf("expected missing date fields reported, got %v", apiErr.Fields)
	}
	if apiErr.Field("name") != "" {
		t.Fatalf("name was present, must not be reported: %v", apiErr.Fields)
	}
}
