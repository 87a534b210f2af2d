package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/config"
	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

func newConcertStore(t *testing.T, handler http.Handler) (*ConcertStore, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := api.NewClient(config.Config{APIBaseURL: srv.URL, Timeout: 5 * time.Second}, api.NewMemoryTokenStore())
	return NewConcertStore(services.NewConcertService(client)), srv.Close
}

func concertList(concerts ...models.Concert) models.Paginated[models.Concert] {
	return models.Paginated[models.Concert]{Count: len(concerts), Results: concerts}
}

func TestCreateConcertPrependsToList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(concertList(models.Concert{ID: 1, Name: "Koncert wiosenny"}))
	})
	mux.HandleFunc("POST /concerts/", func(w http.ResponseWriter, r *http.Request) {
		var req models.ConcertCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode create body: %v", err)
		}
		json.NewEncoder(w).Encode(models.Concert{ID: 2, Name: req.Name, Status: models.ConcertPlanned})
	})

	store, done := newConcertStore(t, mux)
	defer done()
	ctx := context.Background()

	store.FetchConcerts(ctx, services.ConcertFilters{}, false)
	ok := store.CreateConcert(ctx, models.ConcertCreateRequest{
		Name: "Koncert noworoczny",
		Date: "2026-01-01T18:00:00",
	})
	if !ok {
		t.Fatalf("create failed: %s", store.Err())
	}

	concerts := store.Concerts()
	if len(concerts) != 2 || concerts[0].ID != 2 {
		t.Fatalf("expected created concert prepended, got %v", concerts)
	}
	if store.TotalCount() != 2 {
		t.Fatalf("expected total count 2, got %d", store.TotalCount())
	}
}

func TestConcertFiltersOmitUnsetFields(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(concertList())
	})

	store, done := newConcertStore(t, mux)
	defer done()

	store.FetchConcerts(context.Background(), services.ConcertFilters{Status: models.ConcertConfirmed}, false)
	if gotQuery != "status=confirmed" {
		t.Fatalf("expected only the status param, got %q", gotQuery)
	}
}

func TestRegisterForConcertUpdatesCachedCounts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(concertList(
			models.Concert{ID: 1, Name: "a", ParticipantsCount: 3},
			models.Concert{ID: 2, Name: "b", ParticipantsCount: 5},
		))
	})
	mux.HandleFunc("POST /concerts/1/register/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode register body: %v", err)
		}
		if body["action"] != "register" {
			t.Errorf("expected register action, got %q", body["action"])
		}
		json.NewEncoder(w).Encode(models.ConcertRegistrationResponse{
			Message:           "Pomyślnie zapisałeś się na koncert.",
			ParticipantsCount: 4,
			IsRegistered:      true,
		})
	})

	store, done := newConcertStore(t, mux)
	defer done()
	ctx := context.Background()

	store.FetchConcerts(ctx, services.ConcertFilters{}, false)
	if !store.RegisterForConcert(ctx, 1) {
		t.Fatalf("register failed: %s", store.Err())
	}

	concerts := store.Concerts()
	if concerts[0].ParticipantsCount != 4 || !concerts[0].IsRegistered {
		t.Fatalf("expected server counts mirrored, got %+v", concerts[0])
	}
	if concerts[1].ParticipantsCount != 5 || concerts[1].IsRegistered {
		t.Fatalf("other concerts must be untouched, got %+v", concerts[1])
	}
	if store.IsRegistering(1) {
		t.Fatalf("expected registration flag cleared")
	}
}

func TestUnregisterRefetchesLoadedDetail(t *testing.T) {
	var detailCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/1/", func(w http.ResponseWriter, r *http.Request) {
		detailCalls.Add(1)
		registered := detailCalls.Load() == 1
		json.NewEncoder(w).Encode(models.ConcertDetail{
			Concert: models.Concert{ID: 1, Name: "a", IsRegistered: registered},
		})
	})
	mux.HandleFunc("POST /concerts/1/register/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ConcertRegistrationResponse{
			Message: "Pomyślnie wypisałeś się z koncertu.",
		})
	})

	store, done := newConcertStore(t, mux)
	defer done()
	ctx := context.Background()

	store.FetchConcert(ctx, 1)
	if !store.UnregisterFromConcert(ctx, 1) {
		t.Fatalf("unregister failed: %s", store.Err())
	}
	if detailCalls.Load() != 2 {
		t.Fatalf("expected detail refetched after unregister, got %d calls", detailCalls.Load())
	}
	current := store.CurrentConcert()
	if current == nil || current.IsRegistered {
		t.Fatalf("expected refreshed detail cached, got %+v", current)
	}
}

func TestRegistrationErrorSurfacesBackendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /concerts/1/register/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Nie można zapisać się na zakończony koncert."}`))
	})

	store, done := newConcertStore(t, mux)
	defer done()

	if store.RegisterForConcert(context.Background(), 1) {
		t.Fatalf("expected registration to fail")
	}
	if store.Err() != "Nie można zapisać się na zakończony koncert." {
		t.Fatalf("expected backend error surfaced, got %q", store.Err())
	}
	if store.IsRegistering(1) {
		t.Fatalf("expected registration flag cleared on failure")
	}
}

func TestDeleteConcertRemovesFromList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(concertList(
			models.Concert{ID: 1, Name: "a"},
			models.Concert{ID: 2, Name: "b"},
		))
	})
	mux.HandleFunc("DELETE /concerts/2/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	store, done := newConcertStore(t, mux)
	defer done()
	ctx := context.Background()

	store.FetchConcerts(ctx, services.ConcertFilters{}, false)
	if !store.DeleteConcert(ctx, 2) {
		t.Fatalf("delete failed: %s", store.Err())
	}
	concerts := store.Concerts()
	if len(concerts) != 1 || concerts[0].ID != 1 {
		t.Fatalf("expected only concert 1 left, got %v", concerts)
	}
	if store.TotalCount() != 1 {
		t.Fatalf("expected count decremented, got %d", store.TotalCount())
	}
}

func TestFetchPermissionsFallsBackToNone(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/permissions/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Brak uprawnień"}`))
	})

	store, done := newConcertStore(t, mux)
	defer done()

	store.FetchPermissions(context.Background(), false)
	perms := store.Permissions()
	if perms == nil || perms.CanCreate {
		t.Fatalf("failed fetch must cache an empty capability set, got %+v", perms)
	}
	if store.Err() != "" {
		t.Fatalf("permission fetch failure must not raise an error banner, got %q", store.Err())
	}
}

func TestFetchPermissionsCachedUntilForced(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /concerts/permissions/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(models.ConcertPermissions{CanCreate: calls.Load() == 1})
	})

	store, done := newConcertStore(t, mux)
	defer done()
	ctx := context.Background()

	store.FetchPermissions(ctx, false)
	store.FetchPermissions(ctx, false)
	if calls.Load() != 1 {
		t.Fatalf("expected single cached fetch, got %d calls", calls.Load())
	}
	store.FetchPermissions(ctx, true)
	perms := store.Permissions()
	if calls.Load() != 2 || perms.CanCreate {
		t.Fatalf("force must replace the cached capability set")
	}
}
